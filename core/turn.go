package core

import (
	"fmt"
	"time"
)

// Turn is one question/answer exchange. It is created when an interviewer
// message is shown, answered once when the candidate replies, and annotated
// by agents with internal notes that are never shown to the candidate.
type Turn struct {
	ID                  int       `json:"turn_id"` // sequential, 1-based
	AgentVisibleMessage string    `json:"agent_visible_message"`
	UserMessage         string    `json:"user_message"`
	InternalNotes       string    `json:"internal_notes"`
	Timestamp           time.Time `json:"timestamp"`
}

// AddNote appends an agent-attributed note to the hidden trace.
func (t *Turn) AddNote(agent, note string) {
	if note == "" {
		return
	}
	entry := fmt.Sprintf("[%s]: %s", agent, note)
	if t.InternalNotes == "" {
		t.InternalNotes = entry
		return
	}
	t.InternalNotes += "\n" + entry
}

// QuestionResult is the scored outcome of one answered question.
// CorrectAnswer is populated only when factual errors were found.
type QuestionResult struct {
	Topic         string  `json:"topic"`
	Question      string  `json:"question"`
	UserAnswer    string  `json:"user_answer"`
	IsCorrect     bool    `json:"is_correct"`
	CorrectAnswer string  `json:"correct_answer,omitempty"`
	Confidence    float64 `json:"confidence"` // 0..1
}
