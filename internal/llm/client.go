// Package llm provides a provider-agnostic interface for structured completion:
// a prompt goes in, and the model answers with a JSON array whose elements are
// constrained to a declared record schema.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/fleveque/therapist-finder/internal/config"
)

// ErrMissingAPIKey is returned when the credential variable is empty at call time.
var ErrMissingAPIKey = errors.New("API key not set")

// Field is one required string property of a record.
type Field struct {
	Name        string
	Description string
}

// RecordSchema describes "an array of objects whose fields are all required strings".
// Each backend translates it into its own schema dialect.
type RecordSchema struct {
	Fields []Field
}

// Names returns the field names in declaration order.
func (s RecordSchema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Request is a single structured-completion call.
type Request struct {
	Prompt      string
	Schema      RecordSchema
	Temperature float64
}

// Client is the interface for structured-completion backends.
// CompleteJSON returns the raw JSON array text produced by the model; it does
// not validate the elements. An empty string means the model said nothing.
type Client interface {
	CompleteJSON(ctx context.Context, req Request) (string, error)
	ProviderName() string
	ModelName() string
}

// KeySource resolves the API key. It is called on every request so a rotated
// credential takes effect without a restart.
type KeySource func() (string, error)

// EnvKey reads the key from the named environment variable each time it is called.
func EnvKey(name string) KeySource {
	return func() (string, error) {
		key := os.Getenv(name)
		if key == "" {
			return "", fmt.Errorf("%w: $%s is empty", ErrMissingAPIKey, name)
		}
		return key, nil
	}
}

// New builds the backend selected by cfg.Provider.
func New(cfg config.LLMConfig, logger *zap.Logger) (Client, error) {
	active := cfg.Active()
	keys := EnvKey(active.APIKeyEnv)

	var client Client
	switch cfg.Provider {
	case "gemini":
		client = NewGeminiClient(keys, active.Model)
	case "anthropic":
		client = NewAnthropicClient(keys, active.Model)
	case "openai":
		client = NewOpenAIClient(keys, active.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}

	logger.Debug("structured completion backend selected",
		zap.String("provider", client.ProviderName()),
		zap.String("model", client.ModelName()),
		zap.String("key_env", active.APIKeyEnv),
	)
	return client, nil
}
