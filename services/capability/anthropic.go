package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"lessontutor/models"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	providerAnthropic = "anthropic"

	// anthropicOpening is sent when a prompt carries only system text, since
	// the Messages API needs at least one user turn.
	anthropicOpening = "Please begin."
)

// AnthropicClient generates through the Messages API. Structured output is a
// forced tool use whose input schema is the requested schema.
type AnthropicClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	if model == "" {
		model = string(anthropic.ModelClaude4Sonnet20250514)
	}

	return &AnthropicClient{
		client:    &client,
		model:     model,
		maxTokens: 4096,
	}
}

func (c *AnthropicClient) Generate(ctx context.Context, messages []models.Message, opts ...Option) (string, error) {
	o := applyOptions(opts)
	params := c.newParams(messages, o)

	log.Printf("[INFO] Calling Anthropic for text generation with %d messages", len(params.Messages))
	response, err := c.client.Messages.New(ctx, params)
	if err != nil {
		log.Printf("[ERROR] Failed to call Anthropic API: %v", err)
		return "", &Error{Provider: providerAnthropic, Op: "generate", Err: err}
	}

	var text strings.Builder
	for _, block := range response.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(textBlock.Text)
		}
	}

	content := strings.TrimSpace(text.String())
	if content == "" {
		log.Printf("[ERROR] No text content in Anthropic response (stop reason %s)", response.StopReason)
		return "", &Error{Provider: providerAnthropic, Op: "generate", Err: ErrEmptyResponse}
	}

	return content, nil
}

func (c *AnthropicClient) GenerateStructured(ctx context.Context, messages []models.Message, schema Schema, out any, opts ...Option) error {
	o := applyOptions(opts)
	params := c.newParams(messages, o)
	params.Tools = []anthropic.ToolUnionParam{toolFor(schema)}
	params.ToolChoice = anthropic.ToolChoiceUnionParam{
		OfTool: &anthropic.ToolChoiceToolParam{Name: schema.Name},
	}

	log.Printf("[INFO] Calling Anthropic for structured output %s (schema %s)", schema.Name, schema.Version)
	response, err := c.client.Messages.New(ctx, params)
	if err != nil {
		log.Printf("[ERROR] Failed to call Anthropic API: %v", err)
		return &Error{Provider: providerAnthropic, Op: "generate_structured", Err: err}
	}

	for _, block := range response.Content {
		toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok || toolUse.Name != schema.Name {
			continue
		}

		inputJSON, err := json.Marshal(toolUse.Input)
		if err != nil {
			return &Error{Provider: providerAnthropic, Op: "generate_structured", Err: err}
		}

		if err := DecodeStructured(string(inputJSON), schema, out, o.Strict); err != nil {
			log.Printf("[ERROR] Failed to parse %s tool input: %v", schema.Name, err)
			return &Error{Provider: providerAnthropic, Op: "generate_structured", Err: err}
		}
		return nil
	}

	log.Printf("[ERROR] No %s tool use in Anthropic response", schema.Name)
	return &Error{
		Provider: providerAnthropic,
		Op:       "generate_structured",
		Err:      fmt.Errorf("%w: no tool use for %s", ErrEmptyResponse, schema.Name),
	}
}

func (c *AnthropicClient) newParams(messages []models.Message, o Options) anthropic.MessageNewParams {
	system, conversation := toAnthropicMessages(messages)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		Messages:    conversation,
		Temperature: anthropic.Float(o.Temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	return params
}

// toAnthropicMessages lifts system messages into a single system prompt and
// converts the rest of the dialogue.
func toAnthropicMessages(messages []models.Message) (string, []anthropic.MessageParam) {
	var systemParts []string
	var conversation []anthropic.MessageParam

	for _, msg := range messages {
		switch msg.Role {
		case models.RoleSystem:
			systemParts = append(systemParts, msg.Content)
		case models.RoleUser:
			conversation = append(conversation, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case models.RoleAssistant:
			if msg.Content == "" {
				continue
			}
			conversation = append(conversation, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	if len(conversation) == 0 || conversation[0].Role != anthropic.MessageParamRoleUser {
		opening := anthropic.NewUserMessage(anthropic.NewTextBlock(anthropicOpening))
		conversation = append([]anthropic.MessageParam{opening}, conversation...)
	}

	return strings.Join(systemParts, "\n\n"), conversation
}

// toolFor describes schema as the single tool the model is forced to call.
func toolFor(schema Schema) anthropic.ToolUnionParam {
	return anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        schema.Name,
			Description: anthropic.String(schema.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: schema.Properties(),
				Required:   schema.Required(),
			},
		},
	}
}
