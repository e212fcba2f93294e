package provider

import (
	"context"
	"fmt"

	"repowiki/internal/config"
)

// Constructor creates a Generator for the given model using the given key.
type Constructor func(ctx context.Context, apiKey, model string) (Generator, error)

// registry holds registered generator constructors.
var registry = map[string]Constructor{}

// Register registers a generator constructor by provider name.
func Register(name string, constructor Constructor) {
	registry[name] = constructor
}

// NewGenerator creates a Generator based on the given configuration. It is
// called once per build so the API key is re-resolved from the execution
// environment each time rather than cached in a long-lived client.
func NewGenerator(ctx context.Context, cfg *config.Config) (Generator, error) {
	name := cfg.Provider.Default

	constructor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %q", name)
	}

	var (
		apiKey string
		err    error
	)
	switch name {
	case "gemini":
		apiKey, err = config.ResolveAPIKey(
			cfg.Provider.Gemini.APIKeySource, cfg.Provider.Gemini.APIKey, "GEMINI_API_KEY")
	case "anthropic":
		apiKey, err = config.ResolveAPIKey(
			cfg.Provider.Anthropic.APIKeySource, cfg.Provider.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	default:
		return nil, fmt.Errorf("no key source for provider: %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving %s API key: %w", name, err)
	}

	return constructor(ctx, apiKey, cfg.Provider.Model)
}
