package schema

import (
	"encoding/json"
	"fmt"
)

type fieldJSON struct {
	Type        string `json:"type"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
}

// MarshalJSON serializes the schema as a map of field names to their type
// names, requiredness and descriptions.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}

	raw := make(map[string]fieldJSON, len(s))
	for key, field := range s {
		if field.Type == nil {
			return nil, fmt.Errorf("field %s: type is nil", key)
		}
		raw[key] = fieldJSON{
			Type:        field.Type.Name(),
			Required:    field.Required,
			Description: field.Description,
		}
	}

	return json.Marshal(raw)
}

// UnmarshalJSON deserializes a schema written by MarshalJSON. Custom and
// enum types cannot round-trip and are rejected.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if s == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}

	if string(data) == "null" {
		*s = nil
		return nil
	}

	var raw map[string]fieldJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed := make(Schema, len(raw))
	for key, f := range raw {
		t, err := ParseType(f.Type)
		if err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
		parsed[key] = Field{Type: t, Required: f.Required, Description: f.Description}
	}

	*s = parsed
	return nil
}
