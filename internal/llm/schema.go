package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildCardJSONSchema returns the JSON-Schema (draft 2020-12 subset) the model
// output is held to. The schema is deliberately permissive about presence
// (a missing key reads as empty downstream) but strict about types, so a
// string where a list belongs fails as malformed instead of half-parsing.
func BuildCardJSONSchema() map[string]any {
	stringProp := map[string]any{"type": "string"}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"Name":        stringProp,
			"Designation": stringProp,
			"Company":     stringProp,
			"Address":     stringProp,
			"Industry":    stringProp,
			"Services":    map[string]any{"type": "array", "items": stringProp},
		},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
