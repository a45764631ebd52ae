package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/interviewmesh/schema"
)

// Interview stop reasons. User-initiated stops carry the classifier's reason
// appended after StopUserStoppedPrefix.
const (
	StopInvalidRole           = "invalid_role"
	StopQuestionsExhausted    = "questions_exhausted"
	StopTooManyHallucinations = "too_many_hallucinations"
	StopUserStoppedPrefix     = "user_stopped: "
)

// DefaultDifficulty is the starting question difficulty on the 1-5 scale.
const DefaultDifficulty = 3

// ConversationState is the single mutable record of an interview run.
//
// Invariants maintained by the mutator methods:
//   - Turns[i].ID == i+1 for all i
//   - QuestionsAsked equals the number of interviewer-authored turns
//   - TopicsCovered contains no duplicates, insertion order preserved
//   - IsFinished transitions exactly once from false to true, and StopReason
//     is non-empty iff IsFinished is true
type ConversationState struct {
	ID string `json:"id"`

	// Candidate identity, immutable after creation.
	Participant string `json:"participant_name"`
	Role        string `json:"role"`
	Grade       string `json:"grade"` // Junior / Middle / Senior
	Experience  string `json:"experience"`

	Turns []*Turn `json:"turns"`

	// CurrentUserMessage is transient scratch, overwritten each cycle.
	CurrentUserMessage string `json:"current_user_message"`

	CurrentDifficulty int      `json:"current_difficulty"` // 1..5
	QuestionsAsked    int      `json:"questions_asked"`
	TopicsCovered     []string `json:"topics_covered"`

	QuestionResults        []QuestionResult `json:"question_results"`
	DetectedHallucinations []string         `json:"detected_hallucinations"`
	OffTopicAttempts       int              `json:"off_topic_attempts"`

	// Latest mentor outputs, overwritten each cycle and read by the
	// interviewer within the same cycle.
	LastAnalysis    *schema.MentorAnalysis    `json:"last_analysis,omitempty"`
	LastCalibration *schema.CalibrationResult `json:"last_calibration,omitempty"`

	IsFinished bool   `json:"is_finished"`
	StopReason string `json:"stop_reason,omitempty"`

	FinalFeedback *schema.FinalFeedback `json:"final_feedback,omitempty"`

	Started time.Time `json:"started"`
}

// NewConversationState creates the initial state for a candidate.
func NewConversationState(participant, role, grade, experience string) *ConversationState {
	return &ConversationState{
		ID:                uuid.NewString(),
		Participant:       participant,
		Role:              role,
		Grade:             grade,
		Experience:        experience,
		CurrentDifficulty: DefaultDifficulty,
		Started:           time.Now().UTC(),
	}
}

// AppendTurn records a new interviewer-authored turn and increments the
// question counter. Returns the created turn for annotation.
func (s *ConversationState) AppendTurn(visibleMessage string) *Turn {
	turn := &Turn{
		ID:                  len(s.Turns) + 1,
		AgentVisibleMessage: visibleMessage,
		Timestamp:           time.Now().UTC(),
	}
	s.Turns = append(s.Turns, turn)
	s.QuestionsAsked++
	return turn
}

// LastTurn returns the most recent turn, or nil before the greeting.
func (s *ConversationState) LastTurn() *Turn {
	if len(s.Turns) == 0 {
		return nil
	}
	return s.Turns[len(s.Turns)-1]
}

// RecordUserMessage stores the candidate's reply in the scratch field and on
// the turn it answers.
func (s *ConversationState) RecordUserMessage(msg string) {
	s.CurrentUserMessage = msg
	if turn := s.LastTurn(); turn != nil {
		turn.UserMessage = msg
	}
}

// CoverTopic appends a topic unless it is empty or already covered.
func (s *ConversationState) CoverTopic(topic string) {
	if topic == "" {
		return
	}
	for _, t := range s.TopicsCovered {
		if t == topic {
			return
		}
	}
	s.TopicsCovered = append(s.TopicsCovered, topic)
}

// Finish marks the interview finished with the given reason. The transition
// is monotonic: once finished, later calls are ignored and the original
// reason is preserved. Reports whether this call performed the transition.
func (s *ConversationState) Finish(reason string) bool {
	if s.IsFinished {
		return false
	}
	s.IsFinished = true
	s.StopReason = reason
	return true
}
