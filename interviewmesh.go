// Package interviewmesh provides a high-level façade over the interview
// engine and its agent roles, enabling rapid construction of automated
// technical-interview sessions. Most applications interact with this package
// by:
//  1. Creating an InterviewMesh via New() with a model.Model backend
//  2. Calling Run() with the candidate's identity and an input source
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. All defaults are safe for local development; production
// deployments typically supply a session-log sink and a structured logger.
package interviewmesh

import (
	"context"
	"time"

	"github.com/hupe1980/interviewmesh/agent"
	"github.com/hupe1980/interviewmesh/core"
	"github.com/hupe1980/interviewmesh/engine"
	"github.com/hupe1980/interviewmesh/logging"
	"github.com/hupe1980/interviewmesh/model"
	"github.com/hupe1980/interviewmesh/transcript"
)

// Candidate identifies the person being interviewed and the position they
// apply for.
type Candidate struct {
	Name       string
	Role       string
	Grade      string
	Experience string
}

// Options configures the InterviewMesh instance.
type Options struct {
	// MaxQuestions is the question budget per session.
	MaxQuestions int

	// MaxHallucinations is the fabricated-claim budget per session.
	MaxHallucinations int

	// MaxRetries bounds the structured-output retry loop per agent call.
	MaxRetries int

	// RetryDelay is the pause between structured-output retry rounds.
	RetryDelay time.Duration

	// Sink receives session logs (defaults to a no-op sink if nil).
	Sink transcript.Sink

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// OnMessage receives every candidate-visible interviewer message.
	OnMessage func(message string)
}

// InterviewMesh is the high-level façade aggregating the engine and the four
// agent roles.
type InterviewMesh struct {
	opts  Options
	llm   model.Model
	input engine.InputSource
}

// New creates a new InterviewMesh instance backed by the given model. The
// input source supplies the candidate's utterances.
func New(llm model.Model, input engine.InputSource, optFns ...func(o *Options)) *InterviewMesh {
	opts := Options{
		MaxQuestions:      engine.DefaultMaxQuestions,
		MaxHallucinations: engine.DefaultMaxHallucinations,
		Sink:              transcript.NoOpSink{},
		Logger:            logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &InterviewMesh{opts: opts, llm: llm, input: input}
}

// Run conducts one full interview for the candidate and returns the final
// state. On an unrecoverable error the partial state is returned alongside
// the error.
func (m *InterviewMesh) Run(ctx context.Context, candidate Candidate) (*core.ConversationState, error) {
	agentOpts := func(o *agent.Options) {
		o.Logger = m.opts.Logger
		if m.opts.MaxRetries > 0 {
			o.MaxRetries = m.opts.MaxRetries
		}
		if m.opts.RetryDelay > 0 {
			o.RetryDelay = m.opts.RetryDelay
		}
	}

	eng := engine.New(
		agent.NewInterviewer(m.llm, agentOpts),
		agent.NewMentor(m.llm, agentOpts),
		agent.NewVibeMaster(m.llm, agentOpts),
		agent.NewManager(m.llm, agentOpts),
		func(o *engine.Options) {
			o.MaxQuestions = m.opts.MaxQuestions
			o.MaxHallucinations = m.opts.MaxHallucinations
			o.Input = m.input
			o.Sink = m.opts.Sink
			o.Logger = m.opts.Logger
			o.OnMessage = m.opts.OnMessage
		},
	)

	state := core.NewConversationState(candidate.Name, candidate.Role, candidate.Grade, candidate.Experience)

	return eng.Run(ctx, state)
}
