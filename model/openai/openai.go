// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API. Structured generation is constrained through the
// json_schema response format so the model cannot emit anything but an
// instance of the requested schema.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/interviewmesh/model"
)

// Options configure the OpenAI model adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates a new OpenAI model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Model{client: client, opts: opts}
}

// GenerateStructured requests a completion constrained to the given schema
// and returns the raw JSON payload.
func (m *Model) GenerateStructured(ctx context.Context, messages []model.Message, schema model.Schema) (json.RawMessage, error) {
	params := m.buildParams(messages)

	params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:        schema.Name,
				Description: openai.String(schema.Description),
				Schema:      schema.Definition,
				Strict:      openai.Bool(true),
			},
		},
	}

	content, err := m.complete(ctx, params)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(content), nil
}

// GenerateText requests an unconstrained completion and returns its text.
func (m *Model) GenerateText(ctx context.Context, messages []model.Message) (string, error) {
	return m.complete(ctx, m.buildParams(messages))
}

func (m *Model) buildParams(messages []model.Message) openai.ChatCompletionNewParams {
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			converted = append(converted, openai.SystemMessage(msg.Text))
		case model.RoleAssistant:
			converted = append(converted, openai.AssistantMessage(msg.Text))
		default:
			converted = append(converted, openai.UserMessage(msg.Text))
		}
	}

	return openai.ChatCompletionNewParams{
		Messages:            converted,
		Model:               m.opts.Model,
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}
}

func (m *Model) complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// Info returns metadata describing this OpenAI model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:            m.opts.Model,
		Provider:        "openai",
		SupportsSchemas: true,
	}
}
