package model

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// outcome is a single canned reply: either a payload or an error.
type outcome struct {
	text string
	err  error
}

// ScriptedModel is a lightweight in-memory Model useful for tests & examples.
// Outcomes are queued per method and consumed in FIFO order; an empty queue
// yields an error, which makes "fails on every attempt" scenarios the
// zero-configuration default.
type ScriptedModel struct {
	info Info

	mu         sync.Mutex
	structured []outcome
	free       []outcome

	// Call counters, readable after the fact via the accessor methods.
	structuredCalls int
	textCalls       int
}

// NewScriptedModel constructs a ScriptedModel with schema support enabled.
func NewScriptedModel(name string) *ScriptedModel {
	return &ScriptedModel{info: Info{Name: name, Provider: "scripted", SupportsSchemas: true}}
}

// QueueStructured registers a raw JSON payload for the next structured call.
func (m *ScriptedModel) QueueStructured(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.structured = append(m.structured, outcome{text: raw})
}

// QueueStructuredError registers a failure for the next structured call.
func (m *ScriptedModel) QueueStructuredError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.structured = append(m.structured, outcome{err: err})
}

// QueueText registers a free-form completion for the next text call.
func (m *ScriptedModel) QueueText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.free = append(m.free, outcome{text: text})
}

// QueueTextError registers a failure for the next text call.
func (m *ScriptedModel) QueueTextError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.free = append(m.free, outcome{err: err})
}

// GenerateStructured implements Model.
func (m *ScriptedModel) GenerateStructured(ctx context.Context, _ []Message, schema Schema) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.structuredCalls++
	if len(m.structured) == 0 {
		return nil, fmt.Errorf("scripted model: no structured outcome queued for schema %q", schema.Name)
	}
	next := m.structured[0]
	m.structured = m.structured[1:]
	if next.err != nil {
		return nil, next.err
	}
	return json.RawMessage(next.text), nil
}

// GenerateText implements Model.
func (m *ScriptedModel) GenerateText(ctx context.Context, _ []Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textCalls++
	if len(m.free) == 0 {
		return "", fmt.Errorf("scripted model: no text outcome queued")
	}
	next := m.free[0]
	m.free = m.free[1:]
	if next.err != nil {
		return "", next.err
	}
	return next.text, nil
}

// Info implements Model.
func (m *ScriptedModel) Info() Info { return m.info }

// StructuredCalls reports how many structured generations were requested.
func (m *ScriptedModel) StructuredCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.structuredCalls
}

// TextCalls reports how many free generations were requested.
func (m *ScriptedModel) TextCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.textCalls
}
