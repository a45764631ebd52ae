package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/interviewmesh/core"
	"github.com/hupe1980/interviewmesh/schema"
	"github.com/hupe1980/interviewmesh/transcript"
)

// scriptedInterviewer greets with a fixed role verdict and numbers its
// follow-up questions.
type scriptedInterviewer struct {
	roleValid    bool
	greetErr     error
	respondErr   error
	respondCalls int
}

func (s *scriptedInterviewer) Greet(_ context.Context, snap core.Snapshot) (schema.Greeting, error) {
	if s.greetErr != nil {
		return schema.Greeting{}, s.greetErr
	}
	if !s.roleValid {
		return schema.Greeting{
			Thinking:    "role is not a technical occupation",
			Response:    fmt.Sprintf("Sorry, we do not interview for the %q position.", snap.Role),
			IsRoleValid: false,
		}, nil
	}
	return schema.Greeting{
		Thinking:    "role checks out",
		Response:    "Welcome! Tell me about yourself.",
		IsRoleValid: true,
	}, nil
}

func (s *scriptedInterviewer) Respond(_ context.Context, _ core.Snapshot, _ schema.MentorAnalysis, _ schema.CalibrationResult) (schema.InterviewerReply, error) {
	if s.respondErr != nil {
		return schema.InterviewerReply{}, s.respondErr
	}
	s.respondCalls++
	return schema.InterviewerReply{
		Thinking: "next question picked",
		Response: fmt.Sprintf("Question %d", s.respondCalls),
	}, nil
}

// scriptedAnalyst returns the configured report for every answer.
type scriptedAnalyst struct {
	report schema.AnalystReport
	err    error
	calls  int
}

func (s *scriptedAnalyst) Analyze(context.Context, core.Snapshot) (schema.AnalystReport, error) {
	s.calls++
	if s.err != nil {
		return schema.AnalystReport{}, s.err
	}
	return s.report, nil
}

// scriptedClassifier flags stop intent when the candidate's message contains
// the trigger substring.
type scriptedClassifier struct {
	trigger string
	reason  string
	err     error
}

func (s *scriptedClassifier) Classify(_ context.Context, snap core.Snapshot) (schema.UserIntent, error) {
	if s.err != nil {
		return schema.UserIntent{}, s.err
	}
	if s.trigger != "" && strings.Contains(snap.CurrentUserMessage, s.trigger) {
		return schema.UserIntent{
			Thinking:    "candidate asked to stop",
			WantsToStop: true,
			StopReason:  s.reason,
		}, nil
	}
	return schema.UserIntent{Thinking: "keep going", EmotionalState: "neutral"}, nil
}

// scriptedEvaluator returns canned final feedback.
type scriptedEvaluator struct {
	calls int
	err   error
}

func (s *scriptedEvaluator) Feedback(context.Context, *core.ConversationState) (schema.FinalFeedback, error) {
	s.calls++
	if s.err != nil {
		return schema.FinalFeedback{}, s.err
	}
	return schema.FinalFeedback{
		Grade:                "Middle",
		HiringRecommendation: "Hire",
		ConfidenceScore:      80,
		Summary:              "Solid fundamentals.",
	}, nil
}

func benignReport() schema.AnalystReport {
	return schema.AnalystReport{
		Thinking:                 "answer is fine",
		AnswerType:               schema.AnswerCorrect,
		ConfidenceScore:          90,
		InstructionToInterviewer: "move on",
		DifficultyLevel:          3,
		TopicRecommendation:      "concurrency",
	}
}

func newTestEngine(interviewer Interviewer, analyst Analyst, classifier IntentClassifier, evaluator Evaluator, input InputSource, sink transcript.Sink, optFns ...func(o *Options)) *Engine {
	return New(interviewer, analyst, classifier, evaluator, func(o *Options) {
		o.Input = input
		o.Sink = sink
		for _, fn := range optFns {
			fn(o)
		}
	})
}

func TestEngine_UserStops(t *testing.T) {
	interviewer := &scriptedInterviewer{roleValid: true}
	analyst := &scriptedAnalyst{report: benignReport()}
	classifier := &scriptedClassifier{trigger: "stop", reason: "tired"}
	evaluator := &scriptedEvaluator{}
	sink := transcript.NewInMemorySink()

	input := NewScriptedInput(
		"I have three years of Go experience.",
		"I would like to stop here, I am tired.",
	)

	eng := newTestEngine(interviewer, analyst, classifier, evaluator, input, sink)

	state, err := eng.Run(context.Background(), core.NewConversationState("Alex", "Go Developer", "Middle", "3 years"))
	require.NoError(t, err)

	assert.True(t, state.IsFinished)
	assert.Equal(t, "user_stopped: tired", state.StopReason)

	// Greeting plus one question; the stop wish pre-empts a further question.
	assert.Len(t, state.Turns, 2)
	assert.Equal(t, 2, state.QuestionsAsked)
	assert.Equal(t, 1, interviewer.respondCalls)

	assert.Equal(t, 1, evaluator.calls)
	require.NotNil(t, state.FinalFeedback)
	assert.Equal(t, "Hire", state.FinalFeedback.HiringRecommendation)

	// The greeting answer is not a scored question.
	require.Len(t, state.QuestionResults, 1)
	assert.Equal(t, "Question 1", state.QuestionResults[0].Question)

	assert.True(t, sink.Finished())
	require.NotNil(t, sink.Final())
	assert.Equal(t, "user_stopped: tired", sink.Final().StopReason)
}

func TestEngine_TooManyHallucinations(t *testing.T) {
	interviewer := &scriptedInterviewer{roleValid: true}
	analyst := &scriptedAnalyst{report: schema.AnalystReport{
		Thinking:                 "made-up claim detected",
		AnswerType:               schema.AnswerHallucination,
		FactualErrors:            []string{"goroutines are OS threads"},
		CorrectInfo:              "goroutines are multiplexed onto OS threads",
		ConfidenceScore:          95,
		InstructionToInterviewer: "correct gently",
		DifficultyLevel:          2,
		TopicRecommendation:      "runtime",
	}}
	classifier := &scriptedClassifier{}
	evaluator := &scriptedEvaluator{}
	sink := transcript.NewInMemorySink()

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "a confidently wrong answer"
	}

	eng := newTestEngine(interviewer, analyst, classifier, evaluator, NewScriptedInput(lines...), sink, func(o *Options) {
		o.MaxHallucinations = 3
	})

	state, err := eng.Run(context.Background(), core.NewConversationState("Alex", "Go Developer", "Middle", "3 years"))
	require.NoError(t, err)

	assert.Equal(t, core.StopTooManyHallucinations, state.StopReason)
	assert.Len(t, state.DetectedHallucinations, 3)

	// One hallucination per cycle: greeting plus two follow-ups.
	assert.Len(t, state.Turns, 3)
	assert.Equal(t, len(state.Turns), state.QuestionsAsked)
	assert.Equal(t, 1, evaluator.calls)
}

func TestEngine_QuestionsExhausted(t *testing.T) {
	interviewer := &scriptedInterviewer{roleValid: true}
	analyst := &scriptedAnalyst{report: benignReport()}
	classifier := &scriptedClassifier{}
	evaluator := &scriptedEvaluator{}
	sink := transcript.NewInMemorySink()

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "a reasonable answer"
	}

	eng := newTestEngine(interviewer, analyst, classifier, evaluator, NewScriptedInput(lines...), sink, func(o *Options) {
		o.MaxQuestions = 3
	})

	state, err := eng.Run(context.Background(), core.NewConversationState("Alex", "Go Developer", "Middle", "3 years"))
	require.NoError(t, err)

	assert.Equal(t, core.StopQuestionsExhausted, state.StopReason)
	assert.Len(t, state.Turns, 3)
	assert.Equal(t, 3, state.QuestionsAsked)

	for i, turn := range state.Turns {
		assert.Equal(t, i+1, turn.ID)
	}

	assert.Equal(t, 1, evaluator.calls)
	require.NotNil(t, state.FinalFeedback)
}

func TestEngine_InvalidRole(t *testing.T) {
	interviewer := &scriptedInterviewer{roleValid: false}
	analyst := &scriptedAnalyst{report: benignReport()}
	classifier := &scriptedClassifier{}
	evaluator := &scriptedEvaluator{}
	sink := transcript.NewInMemorySink()

	eng := newTestEngine(interviewer, analyst, classifier, evaluator, NewScriptedInput(), sink)

	state, err := eng.Run(context.Background(), core.NewConversationState("Alex", "Astrologer", "Middle", "3 years"))
	require.NoError(t, err)

	assert.True(t, state.IsFinished)
	assert.Equal(t, core.StopInvalidRole, state.StopReason)

	// No interview took place and the manager was never consulted.
	assert.Empty(t, state.Turns)
	assert.Zero(t, state.QuestionsAsked)
	assert.Zero(t, analyst.calls)
	assert.Zero(t, evaluator.calls)

	require.NotNil(t, state.FinalFeedback)
	assert.Equal(t, "No Hire", state.FinalFeedback.HiringRecommendation)
	assert.Contains(t, state.FinalFeedback.Summary, "Astrologer")

	assert.True(t, sink.Finished())
}

func TestEngine_ClassifierFailureIsNonFatal(t *testing.T) {
	interviewer := &scriptedInterviewer{roleValid: true}
	analyst := &scriptedAnalyst{report: benignReport()}
	classifier := &scriptedClassifier{err: errors.New("classifier down")}
	evaluator := &scriptedEvaluator{}
	sink := transcript.NewInMemorySink()

	lines := make([]string, 5)
	for i := range lines {
		lines[i] = "an answer"
	}

	eng := newTestEngine(interviewer, analyst, classifier, evaluator, NewScriptedInput(lines...), sink, func(o *Options) {
		o.MaxQuestions = 2
	})

	state, err := eng.Run(context.Background(), core.NewConversationState("Alex", "Go Developer", "Middle", "3 years"))
	require.NoError(t, err)

	// The conservative default keeps the interview going to its budget.
	assert.Equal(t, core.StopQuestionsExhausted, state.StopReason)
	assert.Equal(t, 1, evaluator.calls)
}

func TestEngine_AnalystFailureIsFatal(t *testing.T) {
	interviewer := &scriptedInterviewer{roleValid: true}
	analyst := &scriptedAnalyst{err: errors.New("analysis exhausted")}
	classifier := &scriptedClassifier{}
	evaluator := &scriptedEvaluator{}
	sink := transcript.NewInMemorySink()

	eng := newTestEngine(interviewer, analyst, classifier, evaluator, NewScriptedInput("an answer"), sink)

	state, err := eng.Run(context.Background(), core.NewConversationState("Alex", "Go Developer", "Middle", "3 years"))
	require.Error(t, err)
	require.NotNil(t, state)

	// Partial state: the greeting happened, the run aborted before a verdict.
	assert.Len(t, state.Turns, 1)
	assert.False(t, state.IsFinished)
	assert.Zero(t, evaluator.calls)

	// The answer was snapshotted before the analysis ran, so the aborted run
	// still preserves it in the session log.
	records := sink.Records()
	require.Len(t, records, 2)
	require.Len(t, records[1].Turns, 1)
	assert.Equal(t, "an answer", records[1].Turns[0].UserMessage)

	// Aborted runs still flush the session log.
	assert.True(t, sink.Finished())
}

func TestEngine_InputExhausted(t *testing.T) {
	interviewer := &scriptedInterviewer{roleValid: true}
	analyst := &scriptedAnalyst{report: benignReport()}
	classifier := &scriptedClassifier{}
	evaluator := &scriptedEvaluator{}
	sink := transcript.NewInMemorySink()

	eng := newTestEngine(interviewer, analyst, classifier, evaluator, NewScriptedInput(), sink)

	_, err := eng.Run(context.Background(), core.NewConversationState("Alex", "Go Developer", "Middle", "3 years"))
	require.Error(t, err)
	assert.ErrorIs(t, err, io.EOF)
}

func TestEngine_NoInputConfigured(t *testing.T) {
	eng := New(&scriptedInterviewer{roleValid: true}, &scriptedAnalyst{}, &scriptedClassifier{}, &scriptedEvaluator{})

	_, err := eng.Run(context.Background(), core.NewConversationState("Alex", "Go Developer", "Middle", "3 years"))
	assert.Error(t, err)
}

func TestEngine_DeliversVisibleMessages(t *testing.T) {
	interviewer := &scriptedInterviewer{roleValid: true}
	analyst := &scriptedAnalyst{report: benignReport()}
	classifier := &scriptedClassifier{trigger: "stop", reason: "tired"}
	evaluator := &scriptedEvaluator{}

	var seen []string

	eng := newTestEngine(interviewer, analyst, classifier, evaluator,
		NewScriptedInput("an answer", "please stop"), transcript.NewInMemorySink(),
		func(o *Options) {
			o.OnMessage = func(message string) { seen = append(seen, message) }
		})

	_, err := eng.Run(context.Background(), core.NewConversationState("Alex", "Go Developer", "Middle", "3 years"))
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "Welcome! Tell me about yourself.", seen[0])
	assert.Equal(t, "Question 1", seen[1])
}

func TestEngine_InternalNotesStayHidden(t *testing.T) {
	interviewer := &scriptedInterviewer{roleValid: true}
	analyst := &scriptedAnalyst{report: benignReport()}
	classifier := &scriptedClassifier{trigger: "stop"}
	evaluator := &scriptedEvaluator{}

	eng := newTestEngine(interviewer, analyst, classifier, evaluator,
		NewScriptedInput("an answer", "stop now"), transcript.NewInMemorySink())

	state, err := eng.Run(context.Background(), core.NewConversationState("Alex", "Go Developer", "Middle", "3 years"))
	require.NoError(t, err)

	// Every agent's rationale lands in the hidden trace of its turn.
	require.NotEmpty(t, state.Turns)
	assert.Contains(t, state.Turns[0].InternalNotes, "[Interviewer]:")
	assert.Contains(t, state.Turns[0].InternalNotes, "[Mentor]:")
	assert.Contains(t, state.Turns[0].InternalNotes, "[VibeMaster]:")
}

func TestEngine_DefaultStopReasonWhenClassifierGivesNone(t *testing.T) {
	interviewer := &scriptedInterviewer{roleValid: true}
	analyst := &scriptedAnalyst{report: benignReport()}
	classifier := &scriptedClassifier{trigger: "stop"} // no reason configured
	evaluator := &scriptedEvaluator{}

	eng := newTestEngine(interviewer, analyst, classifier, evaluator,
		NewScriptedInput("stop"), transcript.NewInMemorySink())

	state, err := eng.Run(context.Background(), core.NewConversationState("Alex", "Go Developer", "Middle", "3 years"))
	require.NoError(t, err)

	assert.Equal(t, core.StopUserStoppedPrefix+"no reason given", state.StopReason)
}
