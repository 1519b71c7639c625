// Package llm resolves model configurations to chat model clients and
// hosts the optional speech synthesizer.
package llm

import (
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"personaai/internal/config"
)

// Supported provider values of a ModelConfig.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Fallback for unknown providers: degrade to a known-good model rather
// than failing the chat request.
const (
	DefaultProvider = ProviderOpenAI
	DefaultModelID  = "gpt-4o"
)

// Registry builds chat model clients from provider credentials.
type Registry struct {
	cfg    config.LLMConfig
	logger *slog.Logger
}

// NewRegistry creates a registry over the configured provider credentials.
func NewRegistry(cfg config.LLMConfig, logger *slog.Logger) *Registry {
	return &Registry{cfg: cfg, logger: logger.With("component", "llm")}
}

// Resolve returns a chat model for the provider and model id. An unknown
// provider falls back to the default provider and model.
func (r *Registry) Resolve(provider, modelID string) (llms.Model, error) {
	switch provider {
	case ProviderOpenAI:
		return r.openAI(modelID)

	case ProviderAnthropic:
		if r.cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("anthropic API key not configured")
		}
		model, err := anthropic.New(
			anthropic.WithToken(r.cfg.AnthropicAPIKey),
			anthropic.WithModel(modelID),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}
		return model, nil

	case ProviderOllama:
		model, err := ollama.New(
			ollama.WithModel(modelID),
			ollama.WithServerURL(r.cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}
		return model, nil

	default:
		r.logger.Warn("unknown provider, falling back to default",
			"provider", provider, "fallback", DefaultProvider, "model", DefaultModelID)
		return r.openAI(DefaultModelID)
	}
}

func (r *Registry) openAI(modelID string) (llms.Model, error) {
	if r.cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai API key not configured")
	}
	opts := []openai.Option{
		openai.WithToken(r.cfg.OpenAIAPIKey),
		openai.WithModel(modelID),
	}
	if r.cfg.OpenAIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(r.cfg.OpenAIBaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai model: %w", err)
	}
	return model, nil
}
