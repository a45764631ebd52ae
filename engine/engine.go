package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/interviewmesh/core"
	"github.com/hupe1980/interviewmesh/logging"
	"github.com/hupe1980/interviewmesh/schema"
	"github.com/hupe1980/interviewmesh/transcript"
)

// Interviewer is the candidate-facing agent.
type Interviewer interface {
	Greet(ctx context.Context, snap core.Snapshot) (schema.Greeting, error)
	Respond(ctx context.Context, snap core.Snapshot, analysis schema.MentorAnalysis, calibration schema.CalibrationResult) (schema.InterviewerReply, error)
}

// Analyst grades the candidate's latest answer and recalibrates the session.
type Analyst interface {
	Analyze(ctx context.Context, snap core.Snapshot) (schema.AnalystReport, error)
}

// IntentClassifier detects whether the candidate wants to stop.
type IntentClassifier interface {
	Classify(ctx context.Context, snap core.Snapshot) (schema.UserIntent, error)
}

// Evaluator produces the final hiring feedback.
type Evaluator interface {
	Feedback(ctx context.Context, state *core.ConversationState) (schema.FinalFeedback, error)
}

// Options configures an Engine.
type Options struct {
	// MaxQuestions is the question budget. Defaults to DefaultMaxQuestions.
	MaxQuestions int
	// MaxHallucinations is the fabricated-claim budget. Defaults to
	// DefaultMaxHallucinations.
	MaxHallucinations int
	// Input supplies the candidate's utterances.
	Input InputSource
	// Sink receives a session log after every state mutation.
	Sink transcript.Sink
	// Logger for engine events.
	Logger logging.Logger
	// OnMessage receives every candidate-visible interviewer message.
	OnMessage func(message string)
}

// Engine runs one interview from greeting to final feedback.
type Engine struct {
	interviewer       Interviewer
	analyst           Analyst
	classifier        IntentClassifier
	evaluator         Evaluator
	input             InputSource
	sink              transcript.Sink
	logger            logging.Logger
	maxQuestions      int
	maxHallucinations int
	onMessage         func(message string)
}

// New creates a new Engine from the four agent roles.
func New(interviewer Interviewer, analyst Analyst, classifier IntentClassifier, evaluator Evaluator, optFns ...func(o *Options)) *Engine {
	opts := Options{
		MaxQuestions:      DefaultMaxQuestions,
		MaxHallucinations: DefaultMaxHallucinations,
		Sink:              transcript.NoOpSink{},
		Logger:            logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Engine{
		interviewer:       interviewer,
		analyst:           analyst,
		classifier:        classifier,
		evaluator:         evaluator,
		input:             opts.Input,
		sink:              opts.Sink,
		logger:            opts.Logger,
		maxQuestions:      opts.MaxQuestions,
		maxHallucinations: opts.MaxHallucinations,
		onMessage:         opts.OnMessage,
	}
}

// Run drives the state machine until termination. On an unrecoverable error
// the run aborts, the last consistent state is returned alongside the error,
// and the sink still receives the partial session log.
func (e *Engine) Run(ctx context.Context, state *core.ConversationState) (*core.ConversationState, error) {
	if e.input == nil {
		return state, fmt.Errorf("engine: no input source configured")
	}

	e.logger.Info("interview started", "sessionID", state.ID, "participant", state.Participant, "role", state.Role)

	phase := PhaseStart

	for phase != PhaseTerminated {
		var err error

		switch phase {
		case PhaseStart:
			phase, err = e.start(ctx, state)
		case PhaseUserInput:
			phase, err = e.userInput(ctx, state)
		case PhaseInterviewerResponse:
			phase, err = e.respond(ctx, state)
		case PhaseEvaluation:
			phase, err = e.evaluate(ctx, state)
		default:
			err = fmt.Errorf("engine: unknown phase %v", phase)
		}

		if err != nil {
			e.logger.Error("interview aborted", "sessionID", state.ID, "phase", phase.String(), "error", err)
			e.finishSink(state)

			return state, err
		}
	}

	e.logger.Info("interview finished", "sessionID", state.ID, "stopReason", state.StopReason, "questionsAsked", state.QuestionsAsked)
	e.finishSink(state)

	return state, nil
}

// start opens the interview with a greeting and validates the requested role.
func (e *Engine) start(ctx context.Context, state *core.ConversationState) (Phase, error) {
	greeting, err := e.interviewer.Greet(ctx, state.Snapshot())
	if err != nil {
		return PhaseTerminated, fmt.Errorf("greeting failed: %w", err)
	}

	if !greeting.IsRoleValid {
		e.logger.Warn("requested role rejected", "sessionID", state.ID, "role", state.Role)

		state.Finish(core.StopInvalidRole)
		state.FinalFeedback = synthesizedRejection(state.Role, greeting.Response)

		e.deliver(greeting.Response)
		e.record(state)

		return PhaseTerminated, nil
	}

	turn := state.AppendTurn(greeting.Response)
	turn.AddNote("Interviewer", greeting.Thinking)

	e.deliver(greeting.Response)
	e.record(state)

	return PhaseUserInput, nil
}

// userInput reads the candidate's reply, forks the analyst and the intent
// classifier over a shared snapshot, merges both results, and applies the
// termination policy.
func (e *Engine) userInput(ctx context.Context, state *core.ConversationState) (Phase, error) {
	msg, err := e.input.Next(ctx)
	if err != nil {
		return PhaseTerminated, fmt.Errorf("read user input: %w", err)
	}

	state.RecordUserMessage(msg)
	e.record(state)

	intent, report, err := e.forkJoin(ctx, state.Snapshot())
	if err != nil {
		return PhaseTerminated, err
	}

	e.mergeAnalysis(state, report)
	e.mergeIntent(state, intent)
	e.record(state)

	if decision := EvaluatePolicy(state, e.maxQuestions, e.maxHallucinations); decision.Finish {
		state.Finish(decision.Reason)
		return PhaseEvaluation, nil
	}

	return PhaseInterviewerResponse, nil
}

// forkJoin runs the intent classifier and the analyst concurrently over the
// same immutable snapshot and joins before either result is read. A failed
// classification degrades to the conservative default instead of aborting;
// a failed analysis is fatal.
func (e *Engine) forkJoin(ctx context.Context, snap core.Snapshot) (schema.UserIntent, schema.AnalystReport, error) {
	var (
		wg sync.WaitGroup

		intent    schema.UserIntent
		intentErr error

		report    schema.AnalystReport
		reportErr error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		intent, intentErr = e.classifier.Classify(ctx, snap)
	}()

	go func() {
		defer wg.Done()
		report, reportErr = e.analyst.Analyze(ctx, snap)
	}()

	wg.Wait()

	if intentErr != nil {
		e.logger.Warn("intent classification failed, using default", "error", intentErr)
		intent = schema.DefaultUserIntent()
	}

	if reportErr != nil {
		return intent, report, fmt.Errorf("answer analysis failed: %w", reportErr)
	}

	return intent, report, nil
}

// mergeAnalysis folds the analyst's report into the state: difficulty,
// covered topics, hallucination and off-topic tallies, and the scored result
// of the answered question. The greeting answer is not a scored question.
func (e *Engine) mergeAnalysis(state *core.ConversationState, report schema.AnalystReport) {
	analysis, calibration := report.Split()

	state.LastAnalysis = &analysis
	state.LastCalibration = &calibration
	state.CurrentDifficulty = clampDifficulty(calibration.DifficultyLevel)
	state.CoverTopic(calibration.TopicRecommendation)

	switch analysis.AnswerType {
	case schema.AnswerHallucination:
		state.DetectedHallucinations = append(state.DetectedHallucinations, analysis.FactualErrors...)
	case schema.AnswerOffTopic:
		state.OffTopicAttempts++
	}

	turn := state.LastTurn()
	if turn == nil {
		return
	}

	turn.AddNote("Mentor", report.Thinking)

	if turn.ID == 1 {
		return
	}

	topic := calibration.TopicRecommendation
	if topic == "" {
		topic = "general"
	}

	result := core.QuestionResult{
		Topic:      topic,
		Question:   turn.AgentVisibleMessage,
		UserAnswer: state.CurrentUserMessage,
		IsCorrect:  analysis.IsCorrect(),
		Confidence: float64(analysis.ConfidenceScore) / 100,
	}

	if len(analysis.FactualErrors) > 0 {
		result.CorrectAnswer = analysis.CorrectInfo
	}

	state.QuestionResults = append(state.QuestionResults, result)
}

// mergeIntent folds the classifier's verdict into the state after the
// analysis merge. A stop wish finishes the session immediately.
func (e *Engine) mergeIntent(state *core.ConversationState, intent schema.UserIntent) {
	if turn := state.LastTurn(); turn != nil {
		turn.AddNote("VibeMaster", intent.Thinking)
	}

	if !intent.WantsToStop {
		return
	}

	reason := intent.StopReason
	if reason == "" {
		reason = "no reason given"
	}

	state.Finish(core.StopUserStoppedPrefix + reason)
}

// respond produces the next interviewer turn from the latest analysis, then
// re-applies the termination policy.
func (e *Engine) respond(ctx context.Context, state *core.ConversationState) (Phase, error) {
	if state.LastAnalysis == nil || state.LastCalibration == nil {
		return PhaseTerminated, fmt.Errorf("interviewer response requires a completed analysis")
	}

	reply, err := e.interviewer.Respond(ctx, state.Snapshot(), *state.LastAnalysis, *state.LastCalibration)
	if err != nil {
		return PhaseTerminated, fmt.Errorf("interviewer response failed: %w", err)
	}

	turn := state.AppendTurn(reply.Response)
	turn.AddNote("Interviewer", reply.Thinking)

	e.deliver(reply.Response)

	next := PhaseUserInput

	if decision := EvaluatePolicy(state, e.maxQuestions, e.maxHallucinations); decision.Finish {
		state.Finish(decision.Reason)
		next = PhaseEvaluation
	}

	e.record(state)

	return next, nil
}

// evaluate produces the final feedback unless a terminal path already
// synthesized one.
func (e *Engine) evaluate(ctx context.Context, state *core.ConversationState) (Phase, error) {
	if state.FinalFeedback == nil {
		feedback, err := e.evaluator.Feedback(ctx, state)
		if err != nil {
			return PhaseTerminated, fmt.Errorf("final feedback failed: %w", err)
		}

		state.FinalFeedback = &feedback
	}

	e.record(state)

	return PhaseTerminated, nil
}

func (e *Engine) deliver(message string) {
	if e.onMessage != nil && message != "" {
		e.onMessage(message)
	}
}

func (e *Engine) record(state *core.ConversationState) {
	if err := e.sink.Record(transcript.Capture(state)); err != nil {
		e.logger.Warn("session log record failed", "sessionID", state.ID, "error", err)
	}
}

func (e *Engine) finishSink(state *core.ConversationState) {
	if err := e.sink.Finish(transcript.Capture(state)); err != nil {
		e.logger.Warn("session log finish failed", "sessionID", state.ID, "error", err)
	}
}

// synthesizedRejection builds the feedback for a rejected role without a
// manager call.
func synthesizedRejection(role, explanation string) *schema.FinalFeedback {
	summary := explanation
	if summary == "" {
		summary = fmt.Sprintf("The requested position %q is not a recognized technical role, so the interview was not conducted.", role)
	}

	return &schema.FinalFeedback{
		Grade:                "N/A",
		HiringRecommendation: "No Hire",
		ConfidenceScore:      100,
		Summary:              summary,
	}
}

func clampDifficulty(level int) int {
	if level < 1 {
		return 1
	}

	if level > 5 {
		return 5
	}

	return level
}
