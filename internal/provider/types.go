// Package provider abstracts schema-constrained JSON generation over
// hosted model APIs.
package provider

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNoText is returned when the model response carries no usable text
// payload.
var ErrNoText = errors.New("provider: no text in model response")

// Generator produces a JSON value conforming to a declared schema. Repeated
// calls with identical input may yield different output; callers must not
// assume reproducibility.
type Generator interface {
	// GenerateJSON sends the prompt and returns the raw JSON text the model
	// produced. The schema constrains the output structure; how it is
	// enforced (native structured output vs. instruction plus validation)
	// is provider-specific.
	GenerateJSON(ctx context.Context, prompt string, schema *Schema) (json.RawMessage, error)

	// Name identifies the provider and model for logging.
	Name() string
}

// Schema is a provider-neutral structural schema. It covers the subset of
// JSON Schema the generators need: objects, arrays, and strings.
type Schema struct {
	Type        string // "object", "array", or "string"
	Description string
	Properties  map[string]*Schema
	Required    []string
	Items       *Schema
}

// JSONMap renders the schema as a JSON Schema document fragment, suitable
// for embedding in a prompt or feeding to a validator.
func (s *Schema) JSONMap() map[string]any {
	m := map[string]any{"type": s.Type}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = p.JSONMap()
		}
		m["properties"] = props
	}
	if len(s.Required) > 0 {
		m["required"] = s.Required
	}
	if s.Items != nil {
		m["items"] = s.Items.JSONMap()
	}
	return m
}
