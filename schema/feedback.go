package schema

import (
	"fmt"
	"strings"

	"github.com/hupe1980/interviewmesh/model"
)

// KnowledgeGap records a topic the candidate failed, with the question and
// the answer they should have given.
type KnowledgeGap struct {
	Topic         string `json:"topic"`
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
}

// FinalFeedback is the manager's end-of-interview report. Summary carries
// free-form text and is also used by the early-termination paths (for
// example an invalid role) that synthesize feedback without a model call.
type FinalFeedback struct {
	Thinking             string         `json:"thinking,omitempty"`
	Grade                string         `json:"grade"`                 // Junior / Middle / Senior
	HiringRecommendation string         `json:"hiring_recommendation"` // Strong Hire / Hire / No Hire
	ConfidenceScore      int            `json:"confidence_score"`      // 0..100
	ConfirmedSkills      []string       `json:"confirmed_skills"`
	KnowledgeGaps        []KnowledgeGap `json:"knowledge_gaps"`
	Clarity              string         `json:"clarity"`
	Honesty              string         `json:"honesty"`
	Engagement           string         `json:"engagement"`
	Roadmap              []string       `json:"roadmap"`
	Summary              string         `json:"summary,omitempty"`
}

// Render formats the feedback as a human-readable block for console output
// and transcript files.
func (f FinalFeedback) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s | %s\n", f.Grade, f.HiringRecommendation)
	fmt.Fprintf(&b, "Confidence: %d%%\n\n", f.ConfidenceScore)
	fmt.Fprintf(&b, "Confirmed skills: %s\n", strings.Join(f.ConfirmedSkills, ", "))
	fmt.Fprintf(&b, "Knowledge gaps: %d topics\n\n", len(f.KnowledgeGaps))
	fmt.Fprintf(&b, "Soft skills:\n")
	fmt.Fprintf(&b, "  Clarity: %s\n", f.Clarity)
	fmt.Fprintf(&b, "  Honesty: %s\n", f.Honesty)
	fmt.Fprintf(&b, "  Engagement: %s\n", f.Engagement)
	if len(f.Roadmap) > 0 {
		fmt.Fprintf(&b, "\nRecommended study topics:\n")
		for _, item := range f.Roadmap {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}
	if f.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", f.Summary)
	}
	return b.String()
}

// FinalFeedbackSchema declares the manager's report.
func FinalFeedbackSchema() model.Schema {
	return model.Schema{
		Name:        "final_feedback",
		Description: "Final hiring report over the complete interview history.",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"thinking": map[string]any{
					"type":        "string",
					"description": "Overall impression, strengths, weaknesses, final verdict.",
				},
				"grade": map[string]any{
					"type": "string",
					"enum": []string{"Junior", "Middle", "Senior"},
				},
				"hiring_recommendation": map[string]any{
					"type": "string",
					"enum": []string{"Strong Hire", "Hire", "No Hire"},
				},
				"confidence_score": map[string]any{
					"type":        "integer",
					"description": "Confidence in the verdict, 0-100.",
				},
				"confirmed_skills": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"knowledge_gaps": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":                 "object",
						"additionalProperties": false,
						"properties": map[string]any{
							"topic":          map[string]any{"type": "string"},
							"question":       map[string]any{"type": "string"},
							"correct_answer": map[string]any{"type": "string"},
						},
						"required": []string{"topic", "question", "correct_answer"},
					},
				},
				"clarity": map[string]any{
					"type": "string",
					"enum": []string{"excellent", "good", "average", "poor"},
				},
				"honesty": map[string]any{
					"type": "string",
					"enum": []string{"honest", "evasive"},
				},
				"engagement": map[string]any{
					"type": "string",
					"enum": []string{"high", "medium", "low"},
				},
				"roadmap": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Topics the candidate should study next.",
				},
				"summary": map[string]any{
					"type":        "string",
					"description": "Short free-form summary for the candidate.",
				},
			},
			"required": []string{"thinking", "grade", "hiring_recommendation", "confidence_score", "confirmed_skills", "knowledge_gaps", "clarity", "honesty", "engagement", "roadmap", "summary"},
		},
	}
}
