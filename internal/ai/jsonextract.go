package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoJSONObject means the text holds no balanced {...} object.
	ErrNoJSONObject = errors.New("no JSON object in model output")
	// ErrInvalidJSON means balanced objects were found but none decoded.
	ErrInvalidJSON = errors.New("invalid JSON object in model output")
)

// ExtractJSONObject returns the first balanced {...} object in text that is
// valid JSON. Braces inside string literals are ignored, and an unclosed
// brace does not hide a later object.
func ExtractJSONObject(text string) (json.RawMessage, error) {
	text = cleanJSONString(text)
	sawCandidate := false
	for start := strings.IndexByte(text, '{'); start >= 0; {
		if end := matchBrace(text, start); end >= 0 {
			sawCandidate = true
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return json.RawMessage(candidate), nil
			}
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	if sawCandidate {
		return nil, ErrInvalidJSON
	}
	return nil, ErrNoJSONObject
}

// DecodeJSONObject extracts the first JSON object from text into v.
func DecodeJSONObject(text string, v any) error {
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

// matchBrace returns the index of the brace closing the one at start, or -1.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// cleanJSONString strips markdown code fences around model JSON output.
func cleanJSONString(input string) string {
	s := strings.TrimSpace(input)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
