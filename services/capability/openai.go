package capability

import (
	"context"
	"fmt"
	"log"
	"strings"

	"lessontutor/models"

	"github.com/samber/lo"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const providerOpenAI = "openai"

// OpenAIClient generates through langchaingo. Structured output is obtained
// by forcing a single function call whose parameters are the schema.
type OpenAIClient struct {
	llm llms.Model
}

func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	llm, err := openai.New(
		openai.WithModel(model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return NewLangChainClient(llm), nil
}

// NewLangChainClient wraps any langchaingo model.
func NewLangChainClient(llm llms.Model) *OpenAIClient {
	return &OpenAIClient{llm: llm}
}

func (c *OpenAIClient) Generate(ctx context.Context, messages []models.Message, opts ...Option) (string, error) {
	o := applyOptions(opts)

	log.Printf("[INFO] Calling LLM for text generation with %d messages", len(messages))
	resp, err := c.llm.GenerateContent(ctx, toMessageContent(messages),
		llms.WithTemperature(o.Temperature))
	if err != nil {
		log.Printf("[ERROR] Failed to generate LLM response: %v", err)
		return "", &Error{Provider: providerOpenAI, Op: "generate", Err: err}
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		log.Printf("[ERROR] No content in LLM response")
		return "", &Error{Provider: providerOpenAI, Op: "generate", Err: ErrEmptyResponse}
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}

func (c *OpenAIClient) GenerateStructured(ctx context.Context, messages []models.Message, schema Schema, out any, opts ...Option) error {
	o := applyOptions(opts)

	tools := []llms.Tool{
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        schema.Name,
				Description: schema.Description,
				Parameters:  schema.Parameters,
			},
		},
	}

	log.Printf("[INFO] Calling LLM for structured output %s (schema %s)", schema.Name, schema.Version)
	resp, err := c.llm.GenerateContent(ctx, toMessageContent(messages),
		llms.WithTools(tools),
		llms.WithTemperature(o.Temperature),
		llms.WithToolChoice("required"))
	if err != nil {
		log.Printf("[ERROR] Failed to generate structured LLM response: %v", err)
		return &Error{Provider: providerOpenAI, Op: "generate_structured", Err: err}
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].ToolCalls) == 0 {
		log.Printf("[ERROR] No tool calls in LLM response for %s", schema.Name)
		return &Error{Provider: providerOpenAI, Op: "generate_structured", Err: ErrEmptyResponse}
	}

	toolCall := resp.Choices[0].ToolCalls[0]
	if toolCall.FunctionCall == nil || toolCall.FunctionCall.Name != schema.Name {
		return &Error{
			Provider: providerOpenAI,
			Op:       "generate_structured",
			Err:      fmt.Errorf("%w: unexpected function call", ErrSchemaViolation),
		}
	}

	if err := DecodeStructured(toolCall.FunctionCall.Arguments, schema, out, o.Strict); err != nil {
		log.Printf("[ERROR] Failed to parse %s arguments: %v", schema.Name, err)
		return &Error{Provider: providerOpenAI, Op: "generate_structured", Err: err}
	}

	return nil
}

func toMessageContent(messages []models.Message) []llms.MessageContent {
	return lo.Map(messages, func(msg models.Message, _ int) llms.MessageContent {
		var msgType llms.ChatMessageType
		switch msg.Role {
		case models.RoleSystem:
			msgType = llms.ChatMessageTypeSystem
		case models.RoleUser:
			msgType = llms.ChatMessageTypeHuman
		default:
			msgType = llms.ChatMessageTypeAI
		}
		return llms.TextParts(msgType, msg.Content)
	})
}
