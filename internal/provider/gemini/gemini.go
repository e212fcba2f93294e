// Package gemini implements schema-constrained generation on the Gemini API.
// Gemini enforces the schema natively through structured output: the request
// declares a response schema and the endpoint returns conforming JSON.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	genai "google.golang.org/genai"

	"repowiki/internal/provider"
)

func init() {
	provider.Register("gemini", func(ctx context.Context, apiKey, model string) (provider.Generator, error) {
		return New(ctx, apiKey, model)
	})
}

// Generator is a thin wrapper around the official genai client.
type Generator struct {
	cli   *genai.Client
	model string
}

// New creates a Gemini generator for the given model.
func New(ctx context.Context, apiKey, model string) (*Generator, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Generator{cli: cli, model: model}, nil
}

func (g *Generator) Name() string { return "gemini:" + g.model }

// GenerateJSON sends the prompt with a declared response schema and returns
// the JSON text payload.
func (g *Generator) GenerateJSON(ctx context.Context, prompt string, schema *provider.Schema) (json.RawMessage, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   toGenaiSchema(schema),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, provider.ErrNoText
	}

	txt := resp.Candidates[0].Content.Parts[0].Text
	if txt == "" {
		return nil, provider.ErrNoText
	}
	return json.RawMessage(txt), nil
}

// toGenaiSchema converts the provider-neutral schema to the genai form.
func toGenaiSchema(s *provider.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{Description: s.Description}
	switch s.Type {
	case "object":
		out.Type = genai.TypeObject
	case "array":
		out.Type = genai.TypeArray
	default:
		out.Type = genai.TypeString
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toGenaiSchema(p)
		}
	}
	out.Required = s.Required
	out.Items = toGenaiSchema(s.Items)
	return out
}
