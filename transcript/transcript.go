// Package transcript persists interview session logs. Sinks receive a full
// snapshot after every state mutation and once more on completion; the
// persistence format and timing are each sink's own concern, never the
// engine's.
package transcript

import (
	"errors"
	"time"

	"github.com/hupe1980/interviewmesh/core"
	"github.com/hupe1980/interviewmesh/schema"
)

// Unit is the session log snapshot handed to sinks.
type Unit struct {
	SessionID       string                `json:"session_id"`
	ParticipantName string                `json:"participant_name"`
	Turns           []core.Turn           `json:"turns"`
	FinalFeedback   *schema.FinalFeedback `json:"final_feedback,omitempty"`
	StopReason      string                `json:"stop_reason,omitempty"`
	SessionStart    time.Time             `json:"session_start"`
	CapturedAt      time.Time             `json:"captured_at"`
}

// Capture builds a Unit from the current conversation state. Turns are
// copied by value so later mutations cannot leak into a stored snapshot.
func Capture(state *core.ConversationState) Unit {
	turns := make([]core.Turn, 0, len(state.Turns))
	for _, t := range state.Turns {
		turns = append(turns, *t)
	}
	return Unit{
		SessionID:       state.ID,
		ParticipantName: state.Participant,
		Turns:           turns,
		FinalFeedback:   state.FinalFeedback,
		StopReason:      state.StopReason,
		SessionStart:    state.Started,
		CapturedAt:      time.Now().UTC(),
	}
}

// Sink receives session log snapshots. Record is called after each state
// mutation, Finish exactly once when the run ends (normally or aborted).
type Sink interface {
	Record(unit Unit) error
	Finish(unit Unit) error
}

// NoOpSink discards all snapshots.
type NoOpSink struct{}

// Record implements Sink.
func (NoOpSink) Record(Unit) error { return nil }

// Finish implements Sink.
func (NoOpSink) Finish(Unit) error { return nil }

// MultiSink fans snapshots out to several sinks, collecting all errors.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink combines sinks into one.
func NewMultiSink(sinks ...Sink) *MultiSink { return &MultiSink{sinks: sinks} }

// Record implements Sink.
func (m *MultiSink) Record(unit Unit) error {
	var errs []error
	for _, s := range m.sinks {
		errs = append(errs, s.Record(unit))
	}
	return errors.Join(errs...)
}

// Finish implements Sink.
func (m *MultiSink) Finish(unit Unit) error {
	var errs []error
	for _, s := range m.sinks {
		errs = append(errs, s.Finish(unit))
	}
	return errors.Join(errs...)
}
