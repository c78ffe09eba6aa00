// Package aitest provides a scripted ai.ChatModel for tests.
package aitest

import (
	"context"
	"sync"

	"tripcopilot/internal/ai"
)

// Model replies with Reply (or Err) and records every conversation it receives.
type Model struct {
	Reply string
	Err   error
	// Chunks, when set, is what Stream emits; otherwise Stream emits Reply once.
	Chunks []string

	mu    sync.Mutex
	calls [][]ai.Message
}

func (m *Model) Name() string { return "fake" }

func (m *Model) Invoke(ctx context.Context, messages []ai.Message) (string, error) {
	m.record(messages)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

func (m *Model) Stream(ctx context.Context, messages []ai.Message, onChunk func(string) error) error {
	m.record(messages)
	if m.Err != nil {
		return m.Err
	}
	chunks := m.Chunks
	if chunks == nil {
		chunks = []string{m.Reply}
	}
	for _, c := range chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) record(messages []ai.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, append([]ai.Message(nil), messages...))
}

// Calls returns how many times the model was invoked or streamed.
func (m *Model) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastMessages returns the most recent conversation, or nil.
func (m *Model) LastMessages() []ai.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}
