package policy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed policy.schema.json
var documentSchema string

const schemaID = "inmemory://armorclaw/policy.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaID, strings.NewReader(documentSchema)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(schemaID)
})

// ValidateDocument checks a decoded policy document against the policy JSON
// schema. Values are normalised through JSON first so YAML scalars validate
// the same way as their JSON equivalents.
func ValidateDocument(raw map[string]any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile policy schema: %w", err)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: schema validation failed: %w", ErrInvalidPolicy, err)
	}
	return nil
}
