// Package anthropic implements schema-constrained generation on the
// Anthropic API. The API has no native structured-output mode, so the schema
// is embedded in the prompt as an instruction and the returned text is
// validated against it before being handed back.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/xeipuuv/gojsonschema"

	"repowiki/internal/provider"
)

const maxOutputTokens = 16384

func init() {
	provider.Register("anthropic", func(_ context.Context, apiKey, model string) (provider.Generator, error) {
		return New(apiKey, model), nil
	})
}

// Generator wraps the Anthropic SDK client.
type Generator struct {
	client *anthropic.Client
	model  string
}

// New creates an Anthropic generator for the given model. Options are passed
// through to the SDK client; tests use them to point at a local server.
func New(apiKey, model string, opts ...anthropic.ClientOption) *Generator {
	return &Generator{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (g *Generator) Name() string { return "anthropic:" + g.model }

// GenerateJSON sends the prompt with the schema appended as an instruction,
// then validates the response text against the schema.
func (g *Generator) GenerateJSON(ctx context.Context, prompt string, schema *provider.Schema) (json.RawMessage, error) {
	schemaJSON, err := json.MarshalIndent(schema.JSONMap(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	full := prompt + "\n\nRespond with a single JSON value conforming to this JSON Schema, with no surrounding prose or code fences:\n" + string(schemaJSON)

	resp, err := g.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(g.model),
		Messages:  []anthropic.Message{anthropic.NewUserTextMessage(full)},
		MaxTokens: maxOutputTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic generate: %w", err)
	}

	text := strings.TrimSpace(resp.GetFirstContentText())
	if text == "" {
		return nil, provider.ErrNoText
	}
	text = stripFences(text)

	if err := validate(text, schema); err != nil {
		return nil, err
	}
	return json.RawMessage(text), nil
}

// stripFences removes a surrounding markdown code fence the model may add
// despite instructions.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// validate checks the response text against the declared schema.
func validate(text string, schema *provider.Schema) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema.JSONMap()),
		gojsonschema.NewStringLoader(text),
	)
	if err != nil {
		return fmt.Errorf("validating response: %w", err)
	}
	if !result.Valid() {
		var details []string
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return fmt.Errorf("response does not conform to schema: %s", strings.Join(details, "; "))
	}
	return nil
}
