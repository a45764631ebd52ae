package agent

import (
	"context"
	"time"

	"github.com/hupe1980/interviewmesh/core"
	"github.com/hupe1980/interviewmesh/logging"
	"github.com/hupe1980/interviewmesh/model"
	"github.com/hupe1980/interviewmesh/resolver"
)

// Options configure an agent instance.
type Options struct {
	// Logger receives agent diagnostics. Defaults to NoOp.
	Logger logging.Logger

	// MaxRetries and RetryDelay override the resolver's retry budget.
	MaxRetries int
	RetryDelay time.Duration
}

// Base bundles the model handle, logger and resolver budget shared by all
// agent roles. Embed it and supply the role-specific message building.
type Base struct {
	name       string
	llm        model.Model
	logger     logging.Logger
	maxRetries int
	retryDelay time.Duration
}

// NewBase constructs a Base with resolver defaults.
func NewBase(name string, llm model.Model, optFns ...func(o *Options)) Base {
	opts := Options{
		Logger:     logging.NoOpLogger{},
		MaxRetries: resolver.DefaultMaxRetries,
		RetryDelay: resolver.DefaultRetryDelay,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return Base{
		name:       name,
		llm:        llm,
		logger:     opts.Logger,
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
	}
}

// Name returns the agent's role name, used for internal note attribution.
func (b *Base) Name() string { return b.name }

func (b *Base) resolverOpts() func(o *resolver.Options) {
	return func(o *resolver.Options) {
		o.MaxRetries = b.maxRetries
		o.RetryDelay = b.retryDelay
		o.Logger = b.logger
	}
}

// resolve runs a typed resolution with call logging.
func resolve[T any](ctx context.Context, b *Base, messages []model.Message, schema model.Schema) (T, error) {
	start := time.Now()
	out, err := resolver.Resolve[T](ctx, b.llm, messages, schema, b.resolverOpts())
	logging.LogModelCall(b.logger, schema.Name, time.Since(start), err)
	return out, err
}

// resolveWithDefault runs a typed resolution that falls back to def on
// budget exhaustion.
func resolveWithDefault[T any](ctx context.Context, b *Base, messages []model.Message, schema model.Schema, def T) (T, error) {
	start := time.Now()
	out, err := resolver.ResolveWithDefault(ctx, b.llm, messages, schema, def, b.resolverOpts())
	logging.LogModelCall(b.logger, schema.Name, time.Since(start), err)
	return out, err
}

// historyMessages converts turns into an assistant/user message sequence.
// Unanswered turns contribute the question only.
func historyMessages(turns []core.Turn) []model.Message {
	messages := make([]model.Message, 0, 2*len(turns))
	for _, turn := range turns {
		messages = append(messages, model.AssistantMessage(turn.AgentVisibleMessage))
		if turn.UserMessage != "" {
			messages = append(messages, model.UserMessage(turn.UserMessage))
		}
	}
	return messages
}
