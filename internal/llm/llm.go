// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm invokes hosted text-generation endpoints and validates their
// structured output against JSON Schemas. Two interchangeable providers are
// supported; stages treat both as a callable returning schema-conformant
// structured output.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Backend abstracts a hosted model endpoint. Complete sends a prompt and
// returns the raw text of the model's reply.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrEmptyResponse indicates the model reply contained no JSON payload.
	ErrEmptyResponse = errors.New("llm: empty model response")

	// ErrSchemaMismatch indicates the model reply could not be parsed as a
	// value conforming to the requested schema.
	ErrSchemaMismatch = errors.New("llm: response does not conform to schema")
)

// Invoke sends prompt to the backend and decodes the reply into T after
// validating it against schema. Model replies frequently wrap JSON in prose
// or Markdown fences, or truncate it; Invoke extracts the JSON object and
// attempts a repair pass before giving up. All parse and validation failures
// wrap ErrSchemaMismatch.
func Invoke[T any](ctx context.Context, b Backend, prompt string, schema *Schema) (T, error) {
	var zero T

	text, err := b.Complete(ctx, prompt)
	if err != nil {
		return zero, err
	}

	raw := ExtractJSON(text)
	if raw == "" {
		return zero, ErrEmptyResponse
	}

	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		repaired, repErr := jsonrepair.JSONRepair(raw)
		if repErr != nil {
			return zero, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
		if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
		raw = repaired
	}

	if schema != nil {
		if err := schema.Validate(payload); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return out, nil
}

// ExtractJSON returns the first JSON object embedded in text, stripping any
// surrounding prose or Markdown code fences. It returns "" when text holds
// no opening brace.
func ExtractJSON(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		// Truncated object; hand the tail to the repair pass.
		return strings.TrimSpace(text[start:])
	}
	return text[start : end+1]
}
