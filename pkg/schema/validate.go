package schema

import (
	"maps"
	"slices"
)

// Field describes one entry of a Schema.
type Field struct {
	Type        Type
	Required    bool
	Description string
}

// Required declares a field that must be present.
func Required(t Type, description string) Field {
	return Field{Type: t, Required: true, Description: description}
}

// Optional declares a field that may be omitted.
func Optional(t Type, description string) Field {
	return Field{Type: t, Description: description}
}

// Schema is a map of field names to their expected types.
// Example: {"node": Required(String(), ...), "scale": Optional(Float(), ...)}
type Schema map[string]Field

// Keys returns the field names in sorted order.
func (s Schema) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Validate checks if data conforms to the schema.
// Returns an error with all validation failures found.
func Validate(schema Schema, data map[string]any) error {
	if errs := ValidateAt("", schema, data); len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidateAt validates data and reports failures with keys prefixed by
// path. A nil value counts as missing. Keys the schema does not declare are
// reported as unknown, except for names listed in ignore.
func ValidateAt(path string, schema Schema, data map[string]any, ignore ...string) []error {
	var errs []error

	// Validate each field in the schema
	for _, name := range schema.Keys() {
		field := schema[name]
		value, exists := data[name]
		if !exists || value == nil {
			if field.Required {
				errs = append(errs, &ValidationError{
					Key:    join(path, name),
					Reason: "required",
				})
			}
			continue
		}

		if err := field.Type.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    join(path, name),
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	for _, name := range slices.Sorted(maps.Keys(data)) {
		if _, declared := schema[name]; declared || slices.Contains(ignore, name) {
			continue
		}
		errs = append(errs, &ValidationError{
			Key:    join(path, name),
			Reason: "unknown field",
			Value:  data[name],
		})
	}

	return errs
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
