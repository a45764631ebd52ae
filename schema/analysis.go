package schema

import "github.com/hupe1980/interviewmesh/model"

// Answer classifications produced by the mentor for a candidate reply.
const (
	AnswerCorrect         = "correct"
	AnswerPartial         = "partial"
	AnswerIncorrect       = "incorrect"
	AnswerHallucination   = "hallucination"
	AnswerOffTopic        = "off_topic"
	AnswerCounterQuestion = "counter_question"
)

// MentorAnalysis is the mentor's verdict on the candidate's last answer.
type MentorAnalysis struct {
	AnswerType               string   `json:"answer_type"`
	FactualErrors            []string `json:"factual_errors"`
	CorrectInfo              string   `json:"correct_info"`
	ConfidenceScore          int      `json:"confidence_score"` // 0..100
	InstructionToInterviewer string   `json:"instruction_to_interviewer"`
}

// IsCorrect reports whether the answer counts toward the candidate's score.
func (a MentorAnalysis) IsCorrect() bool {
	return a.AnswerType == AnswerCorrect || a.AnswerType == AnswerPartial
}

// CalibrationResult steers the next interviewer question.
type CalibrationResult struct {
	DifficultyLevel     int    `json:"difficulty_level"` // 1..5
	TopicRecommendation string `json:"topic_recommendation"`
	ShouldGiveHint      bool   `json:"should_give_hint"`
}

// AnalystReport is the combined mentor output: one model call yields both the
// answer analysis and the difficulty calibration, plus the rationale.
type AnalystReport struct {
	Thinking                 string   `json:"thinking"`
	AnswerType               string   `json:"answer_type"`
	FactualErrors            []string `json:"factual_errors"`
	CorrectInfo              string   `json:"correct_info"`
	ConfidenceScore          int      `json:"confidence_score"`
	InstructionToInterviewer string   `json:"instruction_to_interviewer"`
	DifficultyLevel          int      `json:"difficulty_level"`
	TopicRecommendation      string   `json:"topic_recommendation"`
	ShouldGiveHint           bool     `json:"should_give_hint"`
}

// Split separates the combined report into its two typed halves.
func (r AnalystReport) Split() (MentorAnalysis, CalibrationResult) {
	analysis := MentorAnalysis{
		AnswerType:               r.AnswerType,
		FactualErrors:            r.FactualErrors,
		CorrectInfo:              r.CorrectInfo,
		ConfidenceScore:          r.ConfidenceScore,
		InstructionToInterviewer: r.InstructionToInterviewer,
	}
	calibration := CalibrationResult{
		DifficultyLevel:     r.DifficultyLevel,
		TopicRecommendation: r.TopicRecommendation,
		ShouldGiveHint:      r.ShouldGiveHint,
	}
	return analysis, calibration
}

// AnalystReportSchema declares the combined mentor schema.
func AnalystReportSchema() model.Schema {
	return model.Schema{
		Name:        "analyst_report",
		Description: "Analysis of the candidate's answer plus calibration of the next question.",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"thinking": map[string]any{
					"type":        "string",
					"description": "Step-by-step reasoning about the answer and the required difficulty.",
				},
				"answer_type": map[string]any{
					"type": "string",
					"enum": []string{AnswerCorrect, AnswerPartial, AnswerIncorrect, AnswerHallucination, AnswerOffTopic, AnswerCounterQuestion},
				},
				"factual_errors": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Concrete factual errors found in the answer; empty when there are none.",
				},
				"correct_info": map[string]any{
					"type":        "string",
					"description": "The correct information when errors were found, otherwise empty.",
				},
				"confidence_score": map[string]any{
					"type":        "integer",
					"description": "Confidence in the verdict, 0-100.",
				},
				"instruction_to_interviewer": map[string]any{
					"type":        "string",
					"description": "Concrete instruction for the interviewer's next move.",
				},
				"difficulty_level": map[string]any{
					"type":        "integer",
					"description": "Difficulty of the next question, 1-5.",
				},
				"topic_recommendation": map[string]any{
					"type":        "string",
					"description": "Recommended topic for the next question.",
				},
				"should_give_hint": map[string]any{"type": "boolean"},
			},
			"required": []string{"thinking", "answer_type", "factual_errors", "correct_info", "confidence_score", "instruction_to_interviewer", "difficulty_level", "topic_recommendation", "should_give_hint"},
		},
	}
}
