// Package chat composes the per-request pipeline behind the chat endpoint:
// resolve the default model, compile the persona system prompt, and stream
// the provider's reply.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"

	"personaai/internal/models"
	"personaai/internal/prompt"
)

// ErrNoDefaultModel means chat cannot proceed until an admin marks a model
// configuration as default. Retrying does not help.
var ErrNoDefaultModel = errors.New("no default AI model configured")

// Message is one turn of the caller-supplied conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Store is the subset of the storage layer the orchestrator reads.
type Store interface {
	GetDefaultModel(ctx context.Context) (*models.ModelConfig, error)
	GetFirstPersona(ctx context.Context) (*models.PersonaProfile, error)
	GetActivePrompt(ctx context.Context) (*models.SystemPrompt, error)
}

// ModelResolver turns a model configuration into a chat model client.
type ModelResolver interface {
	Resolve(provider, modelID string) (llms.Model, error)
}

// Orchestrator runs the chat pipeline. Stateless; safe for concurrent use.
type Orchestrator struct {
	store        Store
	resolver     ModelResolver
	historyLimit int
	logger       *slog.Logger
}

// New builds an orchestrator. historyLimit bounds how many trailing
// conversation messages are forwarded to the provider.
func New(store Store, resolver ModelResolver, historyLimit int, logger *slog.Logger) *Orchestrator {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &Orchestrator{
		store:        store,
		resolver:     resolver,
		historyLimit: historyLimit,
		logger:       logger.With("component", "chat"),
	}
}

// Stream runs one chat request: it prepends the compiled system prompt to
// the history, dispatches to the configured provider and forwards each
// chunk to emit. Cancelling ctx (client disconnect) cancels the upstream
// provider request.
func (o *Orchestrator) Stream(ctx context.Context, history []Message, emit func(chunk []byte) error) error {
	cfg, err := o.store.GetDefaultModel(ctx)
	if err != nil {
		return fmt.Errorf("resolve model: %w", err)
	}
	if cfg == nil {
		return ErrNoDefaultModel
	}

	// Neither record is required to exist; the compiler handles absence.
	persona, err := o.store.GetFirstPersona(ctx)
	if err != nil {
		return fmt.Errorf("resolve persona: %w", err)
	}
	active, err := o.store.GetActivePrompt(ctx)
	if err != nil {
		return fmt.Errorf("resolve system prompt: %w", err)
	}

	system := prompt.Compile(persona, active)

	model, err := o.resolver.Resolve(cfg.Provider, cfg.ModelID)
	if err != nil {
		return fmt.Errorf("dispatch to provider %q: %w", cfg.Provider, err)
	}

	if len(history) > o.historyLimit {
		history = history[len(history)-o.historyLimit:]
	}

	messages := make([]llms.MessageContent, 0, len(history)+1)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, system))
	for _, m := range history {
		role := llms.ChatMessageTypeHuman
		if m.Role == "assistant" {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, m.Content))
	}

	o.logger.Debug("dispatching chat request",
		"provider", cfg.Provider, "model", cfg.ModelID, "messages", len(messages))

	_, err = model.GenerateContent(ctx, messages,
		llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			return emit(chunk)
		}))
	if err != nil {
		return fmt.Errorf("provider stream: %w", err)
	}
	return nil
}
