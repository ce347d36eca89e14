// Package schema provides a small type system for validating decoded
// documents.
//
// Schemas map field names to typed, optionally required fields. Validation
// collects every failure instead of stopping at the first one:
//
//	s := schema.Schema{
//	    "node":  schema.Required(schema.String(), "target node"),
//	    "scale": schema.Optional(schema.Float(), "start scale"),
//	}
//
//	if err := schema.Validate(s, data); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        // ...
//	    }
//	}
//
// ValidateAt prefixes keys with a path, so nested documents report
// locations like "transition.children[2].scale". Schemas marshal to JSON to
// describe themselves to clients.
package schema
