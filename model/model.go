package model

import (
	"context"
	"encoding/json"
)

// Message roles understood by every provider adapter.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is the normalized chat message exchanged with a provider. Agents
// build plain role/text sequences; adapters translate them into whatever the
// vendor SDK expects so downstream logic needs no per-provider branching.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// SystemMessage is a convenience constructor for a system-role message.
func SystemMessage(text string) Message { return Message{Role: RoleSystem, Text: text} }

// UserMessage is a convenience constructor for a user-role message.
func UserMessage(text string) Message { return Message{Role: RoleUser, Text: text} }

// AssistantMessage is a convenience constructor for an assistant-role message.
func AssistantMessage(text string) Message { return Message{Role: RoleAssistant, Text: text} }

// Schema declares the JSON object a structured generation must produce.
// Definition is a JSON Schema object (draft agnostic, minimal subset
// expected), declared the same way tool parameters are.
type Schema struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Definition  map[string]any `json:"definition"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name            string `json:"name"`
	Provider        string `json:"provider"` // "openai", "anthropic", "scripted", etc.
	SupportsSchemas bool   `json:"supports_schemas"`
}

// Model is the minimal capability the resolver drives. GenerateStructured
// requests a schema-constrained generation and returns the raw JSON payload;
// GenerateText requests an unconstrained generation. Neither method retries
// or parses beyond the provider's own validation — that discipline lives in
// the resolver.
type Model interface {
	GenerateStructured(ctx context.Context, messages []Message, schema Schema) (json.RawMessage, error)
	GenerateText(ctx context.Context, messages []Message) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}
