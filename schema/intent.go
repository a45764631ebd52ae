package schema

import "github.com/hupe1980/interviewmesh/model"

// UserIntent is the vibe check on the candidate's latest message: do they
// want to keep going, and how are they holding up.
type UserIntent struct {
	Thinking        string `json:"thinking"`
	WantsToStop     bool   `json:"wants_to_stop"`
	StopReason      string `json:"stop_reason,omitempty"`
	EmotionalState  string `json:"emotional_state"`
	ConfidenceLevel int    `json:"confidence_level"` // 0..100
}

// DefaultUserIntent is the conservative fallback when intent classification
// cannot be resolved: assume the candidate wants to continue.
func DefaultUserIntent() UserIntent {
	return UserIntent{
		Thinking:        "intent could not be resolved, assuming the candidate wants to continue",
		WantsToStop:     false,
		EmotionalState:  "neutral",
		ConfidenceLevel: 0,
	}
}

// UserIntentSchema declares the intent classification result.
func UserIntentSchema() model.Schema {
	return model.Schema{
		Name:        "user_intent",
		Description: "Classification of the candidate's intent and emotional state.",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"thinking": map[string]any{
					"type":        "string",
					"description": "Reasoning about what the candidate's message signals.",
				},
				"wants_to_stop": map[string]any{
					"type":        "boolean",
					"description": "Whether the candidate wants to end the interview.",
				},
				"stop_reason": map[string]any{
					"type":        "string",
					"description": "Short reason when wants_to_stop is true, otherwise empty.",
				},
				"emotional_state": map[string]any{
					"type": "string",
					"enum": []string{"engaged", "neutral", "stressed", "tired", "frustrated"},
				},
				"confidence_level": map[string]any{
					"type":        "integer",
					"description": "Confidence in this classification, 0-100.",
				},
			},
			"required": []string{"thinking", "wants_to_stop", "stop_reason", "emotional_state", "confidence_level"},
		},
	}
}
