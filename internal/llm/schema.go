// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"fmt"
	"sort"

	"github.com/kaptinlin/jsonschema"
)

// Schema wraps a compiled JSON Schema used to validate model output locally
// before decoding it into a typed value.
type Schema struct {
	compiled *jsonschema.Schema
}

// CompileSchema compiles a JSON Schema definition.
func CompileSchema(def string) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile([]byte(def))
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &Schema{compiled: compiled}, nil
}

// MustSchema compiles a JSON Schema definition and panics on error. Intended
// for package-level schema variables with fixed definitions.
func MustSchema(def string) *Schema {
	s, err := CompileSchema(def)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks data against the schema. The returned error lists every
// failing field.
func (s *Schema) Validate(data any) error {
	result := s.compiled.Validate(data)
	if result.IsValid() {
		return nil
	}

	fields := make([]string, 0, len(result.Errors))
	for field := range result.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var msg string
	for _, field := range fields {
		if msg != "" {
			msg += "; "
		}
		msg += fmt.Sprintf("%s: %s", field, result.Errors[field].Message)
	}
	return fmt.Errorf("validation failed: %s", msg)
}
