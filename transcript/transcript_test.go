package transcript

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/interviewmesh/core"
)

func sampleState() *core.ConversationState {
	state := core.NewConversationState("Alex Doe", "Go Developer", "Middle", "3 years")
	turn := state.AppendTurn("What is a channel?")
	turn.AddNote("Interviewer", "starting simple")
	state.RecordUserMessage("A typed conduit for communication between goroutines.")
	return state
}

func TestCapture_CopiesTurns(t *testing.T) {
	state := sampleState()

	unit := Capture(state)

	require.Len(t, unit.Turns, 1)
	assert.Equal(t, state.ID, unit.SessionID)
	assert.Equal(t, "Alex Doe", unit.ParticipantName)

	// Later mutations must not show through the captured snapshot.
	state.Turns[0].AddNote("Mentor", "late note")
	assert.NotContains(t, unit.Turns[0].InternalNotes, "Mentor")
}

func TestInMemorySink(t *testing.T) {
	sink := NewInMemorySink()
	state := sampleState()

	require.NoError(t, sink.Record(Capture(state)))
	state.Finish("questions_exhausted")
	require.NoError(t, sink.Finish(Capture(state)))

	assert.Len(t, sink.Records(), 1)
	assert.True(t, sink.Finished())

	final := sink.Final()
	require.NotNil(t, final)
	assert.Equal(t, "questions_exhausted", final.StopReason)
}

func TestFileSink_WritesSessionFile(t *testing.T) {
	dir := t.TempDir()

	sink, err := NewFileSink(filepath.Join(dir, "sessions"))
	require.NoError(t, err)

	state := sampleState()
	require.NoError(t, sink.Record(Capture(state)))

	data, err := os.ReadFile(filepath.Join(dir, "sessions", state.ID+".json"))
	require.NoError(t, err)

	var unit Unit
	require.NoError(t, json.Unmarshal(data, &unit))
	assert.Equal(t, state.ID, unit.SessionID)
	require.Len(t, unit.Turns, 1)
	assert.Equal(t, "What is a channel?", unit.Turns[0].AgentVisibleMessage)
}

func TestFileSink_RequiresDir(t *testing.T) {
	_, err := NewFileSink("")
	assert.Error(t, err)
}

// failingSink helps exercise MultiSink error collection.
type failingSink struct{ err error }

func (f failingSink) Record(Unit) error { return f.err }
func (f failingSink) Finish(Unit) error { return f.err }

func TestMultiSink_CollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	healthy := NewInMemorySink()

	multi := NewMultiSink(failingSink{err: boom}, healthy)

	err := multi.Record(Unit{SessionID: "s1"})
	assert.ErrorIs(t, err, boom)

	// The healthy sink still received the snapshot.
	assert.Len(t, healthy.Records(), 1)
}

func TestSQLiteSink_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	sink, err := NewSQLiteSink(filepath.Join(dir, "interviews.db"))
	require.NoError(t, err)
	defer sink.Close()

	state := sampleState()
	require.NoError(t, sink.Record(Capture(state)))

	// Answer lands via upsert on the same turn row.
	state.Turns[0].AddNote("Mentor", "solid answer")
	state.Finish("questions_exhausted")
	require.NoError(t, sink.Finish(Capture(state)))

	var (
		stopReason string
		finished   bool
	)
	row := sink.db.QueryRow(`SELECT stop_reason, finished FROM sessions WHERE id = ?`, state.ID)
	require.NoError(t, row.Scan(&stopReason, &finished))
	assert.Equal(t, "questions_exhausted", stopReason)
	assert.True(t, finished)

	var notes string
	row = sink.db.QueryRow(`SELECT internal_notes FROM turns WHERE session_id = ? AND turn_id = 1`, state.ID)
	require.NoError(t, row.Scan(&notes))
	assert.Contains(t, notes, "Mentor")
}
