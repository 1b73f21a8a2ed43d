package capability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"lessontutor/models"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// DecodeStructured validates raw model output against the schema (required
// keys at every depth, enums, array bounds, types), unmarshals it into out
// and runs the struct-tag rules. Strict mode also rejects fields out does not
// declare.
func DecodeStructured(raw string, schema Schema, out any, strict bool) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrEmptyResponse
	}

	instance, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchemaViolation, schema.Name, err)
	}
	if schema.compiled == nil {
		return fmt.Errorf("%w: %s: schema was not built with NewSchema", ErrSchemaViolation, schema.Name)
	}
	if err := schema.compiled.Validate(instance); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchemaViolation, schema.Name, err)
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchemaViolation, schema.Name, err)
	}

	if err := models.Validate(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchemaViolation, schema.Name, err)
	}

	return nil
}
