package config

import (
	"fmt"
	"os"
)

// ResolveAPIKey resolves a provider API key based on the given source.
// Supported sources: "env" (from the named environment variable) and
// "config" (from the config file value). An empty source defaults to "env"
// so the common zero-config case reads the execution environment. Keys are
// resolved fresh on every build, never cached.
func ResolveAPIKey(source, configValue, envVar string) (string, error) {
	switch source {
	case "", "env":
		return resolveFromEnv(envVar)
	case "config":
		if configValue == "" {
			return "", fmt.Errorf("api_key_source is 'config' but no api_key value provided")
		}
		return configValue, nil
	default:
		return "", fmt.Errorf("unknown api_key_source: %q", source)
	}
}

func resolveFromEnv(envVar string) (string, error) {
	if envVar == "" {
		return "", fmt.Errorf("no environment variable name specified")
	}
	val := os.Getenv(envVar)
	if val == "" {
		return "", fmt.Errorf("environment variable %s is not set", envVar)
	}
	return val, nil
}
