package schema

import "github.com/hupe1980/interviewmesh/model"

// Greeting is the interviewer's opening message. Besides the text it carries
// the role-validity verdict: the greeting call doubles as the gate that
// rejects made-up occupations before the loop ever starts.
type Greeting struct {
	Thinking    string `json:"thinking"`
	Response    string `json:"response"`
	IsRoleValid bool   `json:"is_role_valid"`
}

// InterviewerReply is a follow-up question or reaction shown to the candidate.
type InterviewerReply struct {
	Thinking string `json:"thinking"`
	Response string `json:"response"`
}

// GreetingSchema declares the greeting result including role validation.
func GreetingSchema() model.Schema {
	return model.Schema{
		Name:        "interviewer_greeting",
		Description: "Opening message for the candidate plus a verdict on whether the requested role is a recognized technical occupation.",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"thinking": map[string]any{
					"type":        "string",
					"description": "Reasoning about the candidate profile and how to open the interview.",
				},
				"response": map[string]any{
					"type":        "string",
					"description": "The greeting shown to the candidate, ending with the first question.",
				},
				"is_role_valid": map[string]any{
					"type":        "boolean",
					"description": "Whether the requested role is a real technical occupation.",
				},
			},
			"required": []string{"thinking", "response", "is_role_valid"},
		},
	}
}

// ReplySchema declares the in-loop interviewer response.
func ReplySchema() model.Schema {
	return model.Schema{
		Name:        "interviewer_reply",
		Description: "The interviewer's next message to the candidate.",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"thinking": map[string]any{
					"type":        "string",
					"description": "Reasoning about the mentor's instruction and how to phrase the next question.",
				},
				"response": map[string]any{
					"type":        "string",
					"description": "The message shown to the candidate.",
				},
			},
			"required": []string{"thinking", "response"},
		},
	}
}
