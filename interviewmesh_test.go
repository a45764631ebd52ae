package interviewmesh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/interviewmesh/core"
	"github.com/hupe1980/interviewmesh/engine"
	"github.com/hupe1980/interviewmesh/model"
	"github.com/hupe1980/interviewmesh/transcript"
)

// universalAnalysis satisfies both the analyst and the intent schemas, so the
// two concurrent branches can consume scripted outcomes in either order.
const universalAnalysis = `{
	"thinking": "answer is fine and the candidate asked to stop",
	"answer_type": "correct",
	"confidence_score": 90,
	"instruction_to_interviewer": "wrap up",
	"difficulty_level": 3,
	"topic_recommendation": "basics",
	"wants_to_stop": true,
	"stop_reason": "done",
	"emotional_state": "neutral"
}`

func TestInterviewMesh_FullRun(t *testing.T) {
	llm := model.NewScriptedModel("scripted")
	llm.QueueStructured(`{"thinking": "role ok", "response": "Welcome! Tell me about yourself.", "is_role_valid": true}`)
	llm.QueueStructured(universalAnalysis)
	llm.QueueStructured(universalAnalysis)
	llm.QueueStructured(`{"thinking": "short session", "grade": "Middle", "hiring_recommendation": "Hire", "confidence_score": 60, "summary": "Too short to judge in depth."}`)

	sink := transcript.NewInMemorySink()

	var shown []string

	mesh := New(llm, engine.NewScriptedInput("I build Go services."), func(o *Options) {
		o.Sink = sink
		o.RetryDelay = 0
		o.OnMessage = func(message string) { shown = append(shown, message) }
	})

	state, err := mesh.Run(context.Background(), Candidate{
		Name:       "Alex Doe",
		Role:       "Go Developer",
		Grade:      "Middle",
		Experience: "3 years",
	})
	require.NoError(t, err)

	assert.True(t, state.IsFinished)
	assert.Equal(t, core.StopUserStoppedPrefix+"done", state.StopReason)

	// Only the greeting was asked before the candidate stopped, and the
	// greeting answer is not a scored question.
	assert.Len(t, state.Turns, 1)
	assert.Empty(t, state.QuestionResults)

	require.NotNil(t, state.FinalFeedback)
	assert.Equal(t, "Hire", state.FinalFeedback.HiringRecommendation)

	require.Len(t, shown, 1)
	assert.Equal(t, "Welcome! Tell me about yourself.", shown[0])

	assert.True(t, sink.Finished())
	assert.Equal(t, 4, llm.StructuredCalls())
}
