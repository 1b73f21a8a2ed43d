package capability

import (
	"errors"
	"fmt"
	"testing"

	"lessontutor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = NewSchema("parse_url", "v1", "Parse a URL", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"url": map[string]any{"type": "string"},
	},
	"required": []string{"url"},
})

type urlResult struct {
	URL string `json:"url"`
}

func TestDecodeStructured(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		strict  bool
		want    string
		wantErr error
	}{
		{name: "valid", raw: `{"url":"https://youtube.com/watch?v=abc"}`, strict: true, want: "https://youtube.com/watch?v=abc"},
		{name: "empty", raw: "  ", wantErr: ErrEmptyResponse},
		{name: "not json", raw: "the url is x", wantErr: ErrSchemaViolation},
		{name: "missing required in strict mode", raw: `{}`, strict: true, wantErr: ErrSchemaViolation},
		{name: "missing required in lenient mode", raw: `{}`, wantErr: ErrSchemaViolation},
		{name: "wrong type", raw: `{"url": 42}`, wantErr: ErrSchemaViolation},
		{name: "unknown field in strict mode", raw: `{"url":"x","extra":1}`, strict: true, wantErr: ErrSchemaViolation},
		{name: "unknown field in lenient mode", raw: `{"url":"x","extra":1}`, want: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out urlResult
			err := DecodeStructured(tt.raw, testSchema, &out, tt.strict)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.URL)
		})
	}
}

var decisionSchema = NewSchema("decision", "v1", "A routed decision", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"signal": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"reason":     map[string]any{"type": "string"},
				"bool_value": map[string]any{"type": "boolean"},
			},
			"required": []string{"reason", "bool_value"},
		},
		"level": map[string]any{
			"type": "string",
			"enum": []string{"easy", "moderate", "challenging"},
		},
		"options": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 2,
			"maxItems": 2,
		},
	},
	"required": []string{"signal", "level", "options"},
})

type decision struct {
	Signal struct {
		Reason    string `json:"reason"`
		BoolValue bool   `json:"bool_value"`
	} `json:"signal"`
	Level   string   `json:"level"`
	Options []string `json:"options"`
}

func TestDecodeStructuredValidatesNestedSchema(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid with false signal", raw: `{"signal":{"reason":"r","bool_value":false},"level":"easy","options":["a","b"]}`},
		{name: "empty nested object", raw: `{"signal":{},"level":"easy","options":["a","b"]}`, wantErr: true},
		{name: "nested key missing", raw: `{"signal":{"reason":"r"},"level":"easy","options":["a","b"]}`, wantErr: true},
		{name: "value outside enum", raw: `{"signal":{"reason":"r","bool_value":true},"level":"impossible","options":["a","b"]}`, wantErr: true},
		{name: "too few items", raw: `{"signal":{"reason":"r","bool_value":true},"level":"easy","options":["a"]}`, wantErr: true},
		{name: "too many items", raw: `{"signal":{"reason":"r","bool_value":true},"level":"easy","options":["a","b","c"]}`, wantErr: true},
	}

	for _, tt := range tests {
		for _, strict := range []bool{true, false} {
			t.Run(fmt.Sprintf("%s/strict=%v", tt.name, strict), func(t *testing.T) {
				var out decision
				err := DecodeStructured(tt.raw, decisionSchema, &out, strict)
				if tt.wantErr {
					assert.ErrorIs(t, err, ErrSchemaViolation)
					return
				}
				require.NoError(t, err)
				assert.False(t, out.Signal.BoolValue)
				assert.Equal(t, "easy", out.Level)
			})
		}
	}
}

func TestDecodeStructuredRunsModelValidation(t *testing.T) {
	anyObject := NewSchema("any_object", "v1", "", map[string]any{"type": "object"})
	raw := `{"title":"Quiz","questions":[{"question":"q","answers":[
		{"text":"a","is_correct":true},{"text":"b","is_correct":false},{"text":"c","is_correct":false}
	]}]}`

	var quiz models.Quiz
	err := DecodeStructured(raw, anyObject, &quiz, false)
	assert.ErrorIs(t, err, ErrSchemaViolation)
}

func TestDecodeStructuredRequiresBuiltSchema(t *testing.T) {
	var out urlResult
	err := DecodeStructured(`{"url":"x"}`, Schema{Name: "literal"}, &out, false)
	assert.ErrorIs(t, err, ErrSchemaViolation)
}

func TestSchemaText(t *testing.T) {
	assert.Contains(t, testSchema.Text, `"url"`)
	assert.Equal(t, []string{"url"}, testSchema.Required())
	assert.Contains(t, testSchema.Properties(), "url")
}

func TestErrorUnwrap(t *testing.T) {
	err := error(&Error{Provider: "openai", Op: "generate", Err: ErrEmptyResponse})

	var capErr *Error
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, "openai", capErr.Provider)
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, "openai generate: empty response from model", err.Error())
}
