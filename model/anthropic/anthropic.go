// Package anthropic provides a model wrapper for the Anthropic Claude API.
// Structured generation is constrained through forced tool use: the schema is
// presented as the only available tool and the model is required to call it,
// so the tool input is the structured payload.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/hupe1980/interviewmesh/model"
)

// Options configures the Anthropic model adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Model wraps the Anthropic Messages API behind the generic model.Model interface.
type Model struct {
	client *anthropic.Client
	opts   Options
}

// NewModel creates a new Anthropic model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	opts := defaultOptions()

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Model{
		client: &client,
		opts:   opts,
	}
}

// NewModelFromClient creates a new Anthropic model from an existing client
func NewModelFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Model {
	opts := defaultOptions()

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Model{
		client: client,
		opts:   opts,
	}
}

func defaultOptions() Options {
	return Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
}

// GenerateStructured requests a completion whose only permitted action is a
// call to a tool shaped like the given schema, and returns the tool input.
func (m *Model) GenerateStructured(ctx context.Context, messages []model.Message, schema model.Schema) (json.RawMessage, error) {
	params := m.buildParams(messages)

	inputSchema := anthropic.ToolInputSchemaParam{
		Type: constant.Object("object"),
	}

	if properties, ok := schema.Definition["properties"]; ok {
		inputSchema.Properties = properties
	}

	if required, ok := schema.Definition["required"].([]string); ok {
		inputSchema.Required = required
	}

	params.Tools = []anthropic.ToolUnionParam{
		anthropic.ToolUnionParamOfTool(inputSchema, schema.Name),
	}
	params.ToolChoice = anthropic.ToolChoiceUnionParam{
		OfTool: &anthropic.ToolChoiceToolParam{Name: schema.Name},
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type != "tool_use" {
			continue
		}

		toolBlock := block.AsToolUse()

		payload, err := json.Marshal(toolBlock.Input)
		if err != nil {
			return nil, fmt.Errorf("marshal tool input: %w", err)
		}

		return json.RawMessage(payload), nil
	}

	return nil, fmt.Errorf("no tool_use block in response")
}

// GenerateText requests an unconstrained completion and returns its text.
func (m *Model) GenerateText(ctx context.Context, messages []model.Message) (string, error) {
	resp, err := m.client.Messages.New(ctx, m.buildParams(messages))
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.AsText().Text, nil
		}
	}

	return "", fmt.Errorf("no text block in response")
}

func (m *Model) buildParams(messages []model.Message) anthropic.MessageNewParams {
	var (
		converted    []anthropic.MessageParam
		systemBlocks []anthropic.TextBlockParam
	)

	for _, msg := range messages {
		if msg.Text == "" {
			continue
		}

		switch msg.Role {
		case model.RoleSystem:
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: msg.Text})
		case model.RoleAssistant:
			converted = append(converted, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Text)))
		default:
			converted = append(converted, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Text)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:       m.opts.Model,
		Messages:    converted,
		MaxTokens:   m.opts.MaxTokens,
		Temperature: anthropic.Float(m.opts.Temperature),
	}

	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}

	return params
}

// Info returns metadata describing this Anthropic model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:            string(m.opts.Model),
		Provider:        "anthropic",
		SupportsSchemas: true,
	}
}
