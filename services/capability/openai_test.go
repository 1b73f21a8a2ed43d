package capability

import (
	"context"
	"errors"
	"testing"

	"lessontutor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type scriptedModel struct {
	resp    *llms.ContentResponse
	err     error
	options llms.CallOptions
}

func (m *scriptedModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, opt := range options {
		opt(&m.options)
	}
	return m.resp, m.err
}

func (m *scriptedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func toolCallResponse(name, arguments string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		ToolCalls: []llms.ToolCall{{
			ID:           "call_1",
			Type:         "function",
			FunctionCall: &llms.FunctionCall{Name: name, Arguments: arguments},
		}},
	}}}
}

func TestToMessageContent(t *testing.T) {
	content := toMessageContent([]models.Message{
		models.SystemMessage("system"),
		models.UserMessage("user"),
		models.AssistantMessage("assistant"),
	})

	assert.Equal(t, []llms.ChatMessageType{
		llms.ChatMessageTypeSystem,
		llms.ChatMessageTypeHuman,
		llms.ChatMessageTypeAI,
	}, []llms.ChatMessageType{content[0].Role, content[1].Role, content[2].Role})
	assert.Equal(t, llms.TextContent{Text: "user"}, content[1].Parts[0])
}

func TestOpenAIClientGenerate(t *testing.T) {
	model := &scriptedModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "  Hello there \n"}}}}
	client := NewLangChainClient(model)

	text, err := client.Generate(context.Background(), []models.Message{models.UserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", text)
	assert.InDelta(t, 0.7, model.options.Temperature, 1e-9)

	model.resp = &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: " "}}}
	_, err = client.Generate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	var capErr *Error
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "openai", capErr.Provider)
}

func TestOpenAIClientGenerateStructured(t *testing.T) {
	tests := []struct {
		name    string
		model   *scriptedModel
		wantURL string
		wantErr error
	}{
		{
			name:    "forced tool call",
			model:   &scriptedModel{resp: toolCallResponse("parse_url", `{"url":"https://youtu.be/abc"}`)},
			wantURL: "https://youtu.be/abc",
		},
		{
			name:    "no tool call",
			model:   &scriptedModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "text"}}}},
			wantErr: ErrEmptyResponse,
		},
		{
			name:    "wrong function",
			model:   &scriptedModel{resp: toolCallResponse("other", `{}`)},
			wantErr: ErrSchemaViolation,
		},
		{
			name:    "missing required field",
			model:   &scriptedModel{resp: toolCallResponse("parse_url", `{}`)},
			wantErr: ErrSchemaViolation,
		},
		{
			name:    "provider error",
			model:   &scriptedModel{err: context.DeadlineExceeded},
			wantErr: context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out urlResult
			err := NewLangChainClient(tt.model).GenerateStructured(context.Background(),
				[]models.Message{models.UserMessage("https://youtu.be/abc")}, testSchema, &out,
				WithStrict(true), WithTemperature(0))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var capErr *Error
				assert.True(t, errors.As(err, &capErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, out.URL)
			assert.Equal(t, "required", tt.model.options.ToolChoice)
			require.Len(t, tt.model.options.Tools, 1)
			assert.Equal(t, "parse_url", tt.model.options.Tools[0].Function.Name)
		})
	}
}
