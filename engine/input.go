package engine

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// InputSource supplies the candidate's next utterance on demand.
type InputSource interface {
	// Next blocks until the next utterance is available. It returns io.EOF
	// when the source is exhausted.
	Next(ctx context.Context) (string, error)
}

// ReaderSource reads newline-delimited utterances from an io.Reader,
// typically a console.
type ReaderSource struct {
	scanner *bufio.Scanner
}

// NewReaderSource creates a new ReaderSource reading from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{
		scanner: bufio.NewScanner(r),
	}
}

// Next implements the InputSource interface.
func (s *ReaderSource) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return strings.TrimSpace(s.scanner.Text()), nil
}

// ScriptedInput replays a fixed sequence of utterances. It is intended for
// tests and demos.
type ScriptedInput struct {
	lines []string
	next  int
}

// NewScriptedInput creates a new ScriptedInput replaying the given lines.
func NewScriptedInput(lines ...string) *ScriptedInput {
	return &ScriptedInput{lines: lines}
}

// Next implements the InputSource interface.
func (s *ScriptedInput) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.next >= len(s.lines) {
		return "", io.EOF
	}

	line := s.lines[s.next]
	s.next++

	return line, nil
}
