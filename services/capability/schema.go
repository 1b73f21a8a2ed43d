package capability

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema describes the object a structured call must return. Parameters is a
// JSON schema object; Text is its rendering for prompts, computed once.
type Schema struct {
	Name        string
	Version     string
	Description string
	Parameters  map[string]any
	Text        string

	compiled *jsonschema.Schema
}

func NewSchema(name, version, description string, parameters map[string]any) Schema {
	text, err := json.MarshalIndent(parameters, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("schema %s is not serializable: %v", name, err))
	}

	compiled, err := compileSchema(name, string(text))
	if err != nil {
		panic(fmt.Sprintf("schema %s does not compile: %v", name, err))
	}

	return Schema{
		Name:        name,
		Version:     version,
		Description: description,
		Parameters:  parameters,
		Text:        string(text),
		compiled:    compiled,
	}
}

func compileSchema(name, text string) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	location := name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(location, doc); err != nil {
		return nil, err
	}
	return compiler.Compile(location)
}

// Properties returns the top-level property definitions.
func (s Schema) Properties() map[string]any {
	props, _ := s.Parameters["properties"].(map[string]any)
	return props
}

// Required returns the top-level required property names.
func (s Schema) Required() []string {
	required, _ := s.Parameters["required"].([]string)
	return required
}
