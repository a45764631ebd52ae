package resolver

import "fmt"

// ExhaustedError reports that the full retry budget was spent without
// producing a valid typed object. It carries the number of attempts made and
// the last underlying failure.
type ExhaustedError struct {
	Schema   string
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("resolver: schema %q exhausted after %d attempts: %v", e.Schema, e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// ParseError reports that the salvage pipeline could not extract a JSON
// object from free-form model output. Stage identifies the pipeline step
// that gave up.
type ParseError struct {
	Stage string // "strict" or "scan"
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("resolver: salvage parse failed at %s stage: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
