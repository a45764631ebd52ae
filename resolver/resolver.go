package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/interviewmesh/logging"
	"github.com/hupe1980/interviewmesh/model"
)

// Default retry budget shared by all agents.
const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
)

// Options configure a resolution run.
type Options struct {
	// MaxRetries bounds the number of attempt rounds. Each round is one
	// constrained generation plus, on failure, one salvage-parsed free
	// generation.
	MaxRetries int

	// RetryDelay is the fixed wait between attempt rounds.
	RetryDelay time.Duration

	// Logger receives per-attempt diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

func buildOptions(optFns []func(o *Options)) Options {
	opts := Options{
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return opts
}

// Resolve drives one model invocation to a validated instance of T.
//
// Per attempt it requests a schema-constrained generation and, when that
// fails, an unconstrained generation followed by a salvage parse. After the
// retry budget is spent it returns an *ExhaustedError carrying the attempt
// count; context cancellation is propagated as-is.
func Resolve[T any](ctx context.Context, m model.Model, messages []model.Message, schema model.Schema, optFns ...func(o *Options)) (T, error) {
	var zero T
	opts := buildOptions(optFns)

	var lastErr error
	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		out, err := attemptOnce[T](ctx, m, messages, schema)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		lastErr = err
		opts.Logger.Warn("resolution attempt failed",
			"schema", schema.Name, "attempt", attempt, "max_retries", opts.MaxRetries, "error", err)

		if attempt < opts.MaxRetries {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(opts.RetryDelay):
			}
		}
	}

	return zero, &ExhaustedError{Schema: schema.Name, Attempts: opts.MaxRetries, Err: lastErr}
}

// ResolveWithDefault behaves like Resolve but substitutes def when the retry
// budget is exhausted, for agents where a conservative default is safer than
// aborting the run. Context cancellation still propagates.
func ResolveWithDefault[T any](ctx context.Context, m model.Model, messages []model.Message, schema model.Schema, def T, optFns ...func(o *Options)) (T, error) {
	out, err := Resolve[T](ctx, m, messages, schema, optFns...)
	if err == nil {
		return out, nil
	}
	var exhausted *ExhaustedError
	if errors.As(err, &exhausted) {
		opts := buildOptions(optFns)
		opts.Logger.Warn("resolution exhausted, substituting safe default", "schema", schema.Name, "attempts", exhausted.Attempts)
		return def, nil
	}
	return out, err
}

// attemptOnce performs a single two-tier attempt: constrained generation,
// then salvage parse of a free generation.
func attemptOnce[T any](ctx context.Context, m model.Model, messages []model.Message, schema model.Schema) (T, error) {
	var zero T

	raw, err := m.GenerateStructured(ctx, messages, schema)
	if err == nil {
		var out T
		if uerr := json.Unmarshal(raw, &out); uerr == nil {
			return out, nil
		} else {
			err = fmt.Errorf("structured payload did not match %s: %w", schema.Name, uerr)
		}
	}
	primaryErr := err

	text, terr := m.GenerateText(ctx, messages)
	if terr != nil {
		return zero, fmt.Errorf("constrained generation failed (%v); free generation failed: %w", primaryErr, terr)
	}
	salvaged, serr := Salvage(text)
	if serr != nil {
		return zero, fmt.Errorf("constrained generation failed (%v); salvage failed: %w", primaryErr, serr)
	}
	var out T
	if uerr := json.Unmarshal(salvaged, &out); uerr != nil {
		return zero, fmt.Errorf("constrained generation failed (%v); salvaged payload did not match %s: %w", primaryErr, schema.Name, uerr)
	}
	return out, nil
}
