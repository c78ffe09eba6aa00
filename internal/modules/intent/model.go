// README: Intent result model shared by the rule tier, the model tier, and the cache.
package intent

// Type is the coarse intent of a user query.
type Type string

const (
	TypeNewPlan Type = "new_plan"
	TypeModify  Type = "modify"
	TypeChat    Type = "chat"
)

const (
	// ConfirmationThreshold is the confidence below which the client must confirm.
	ConfirmationThreshold = 0.6
	// DefaultDuration is used whenever no day count can be determined.
	DefaultDuration = 3

	ruleConfidence       = 0.9
	mentionConfidence    = 0.85
	missingDestinationCf = 0.3
	fallbackConfidence   = 0.3
	defaultLLMConfidence = 0.5
)

// Result is the classification of one query.
type Result struct {
	IntentType        Type    `json:"intent_type"`
	IsPlan            bool    `json:"is_plan"`
	IsModification    bool    `json:"is_modification"`
	Destination       *string `json:"destination"`
	Duration          int     `json:"duration"`
	StartPoint        *string `json:"start_point"`
	IntentConfidence  float64 `json:"intent_confidence"`
	NeedsConfirmation bool    `json:"needs_confirmation"`
}

// DestinationName returns the destination or "".
func (r Result) DestinationName() string {
	if r.Destination == nil {
		return ""
	}
	return *r.Destination
}

// finalize derives the intent type and confirmation flag from the raw
// booleans, confidence, and destination.
func finalize(isPlan, isModification bool, destination string, duration int, confidence float64) Result {
	if duration < 1 {
		duration = DefaultDuration
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	r := Result{Duration: duration, IntentConfidence: confidence}
	switch {
	case isPlan:
		r.IntentType, r.IsPlan = TypeNewPlan, true
	case isModification:
		r.IntentType, r.IsModification = TypeModify, true
	default:
		r.IntentType = TypeChat
	}
	if destination != "" {
		d := destination
		r.Destination = &d
	}
	r.NeedsConfirmation = r.IntentConfidence < ConfirmationThreshold
	if r.IsPlan && destination == "" {
		r.IntentConfidence = missingDestinationCf
		r.NeedsConfirmation = true
	}
	return r
}

// Fallback is the conservative answer used when the model tier fails.
func Fallback() Result {
	return finalize(false, false, "", DefaultDuration, fallbackConfidence)
}
