package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ProviderKind selects the request/response shape a provider speaks.
type ProviderKind string

const (
	// ChatCompletion providers take the full message history and a bearer
	// authorization header (OpenAI-style).
	ChatCompletion ProviderKind = "chat-completion"
	// GenerateContent providers take a single content part and carry the
	// secret as a URL query parameter (Gemini-style).
	GenerateContent ProviderKind = "generate-content"
)

// ProviderConfig describes one supported provider. Entries are fixed at
// build time; adding a provider means adding a registry entry plus a builder
// and interpreter case for its kind.
type ProviderConfig struct {
	ID            string
	DisplayName   string
	Endpoint      string
	DefaultModel  string
	KeyPrefixHint string // UI hint only, never enforced
	Kind          ProviderKind
}

// ErrUnknownProvider is returned when an identifier is not among the
// statically registered set. It indicates misconfiguration, not a runtime
// condition, so callers may let it propagate.
var ErrUnknownProvider = errors.New("unknown provider")

// Registry maps provider identifiers to their configurations.
type Registry struct {
	configs map[string]ProviderConfig
	order   []string
}

// NewRegistry builds a registry from the given configurations, preserving
// their order for display purposes.
func NewRegistry(configs ...ProviderConfig) *Registry {
	r := &Registry{configs: make(map[string]ProviderConfig, len(configs))}
	for _, cfg := range configs {
		if _, dup := r.configs[cfg.ID]; dup {
			continue
		}
		r.configs[cfg.ID] = cfg
		r.order = append(r.order, cfg.ID)
	}
	return r
}

// DefaultRegistry returns the built-in provider set.
func DefaultRegistry() *Registry {
	return NewRegistry(
		ProviderConfig{
			ID:            "openai",
			DisplayName:   "OpenAI",
			Endpoint:      "https://api.openai.com/v1/chat/completions",
			DefaultModel:  "gpt-4-turbo-preview",
			KeyPrefixHint: "sk-",
			Kind:          ChatCompletion,
		},
		ProviderConfig{
			ID:            "gemini",
			DisplayName:   "Gemini",
			Endpoint:      "https://generativelanguage.googleapis.com/v1beta",
			DefaultModel:  "gemini-1.5-flash",
			KeyPrefixHint: "AIza",
			Kind:          GenerateContent,
		},
	)
}

// Describe returns the configuration for a provider identifier.
func (r *Registry) Describe(id string) (ProviderConfig, error) {
	cfg, ok := r.configs[id]
	if !ok {
		return ProviderConfig{}, fmt.Errorf("%w: %q", ErrUnknownProvider, id)
	}
	return cfg, nil
}

// All returns every registered provider in registration order.
func (r *Registry) All() []ProviderConfig {
	configs := make([]ProviderConfig, 0, len(r.order))
	for _, id := range r.order {
		configs = append(configs, r.configs[id])
	}
	return configs
}

// BuildRequest constructs the provider-specific request for a new user
// message. The passed-in history is never mutated.
func BuildRequest(cfg ProviderConfig, history []Message, text, secret string) (*Request, error) {
	switch cfg.Kind {
	case ChatCompletion:
		return buildChatCompletionRequest(cfg, history, text, secret)
	case GenerateContent:
		return buildGenerateContentRequest(cfg, text, secret)
	default:
		return nil, fmt.Errorf("%w: %q has unsupported kind %q", ErrUnknownProvider, cfg.ID, cfg.Kind)
	}
}

// Interpret extracts the assistant reply from a provider response, or
// classifies the failure. A success status with a malformed or empty body
// yields a fixed fallback reply rather than an error.
func Interpret(cfg ProviderConfig, status int, body []byte) (string, *ChatError) {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		switch cfg.Kind {
		case ChatCompletion:
			return interpretChatCompletionReply(body), nil
		case GenerateContent:
			return interpretGenerateContentReply(body), nil
		default:
			return fallbackReply, nil
		}
	}

	switch cfg.Kind {
	case ChatCompletion:
		return "", interpretChatCompletionError(cfg, status, body)
	default:
		return "", interpretGenerateContentError(cfg, status, body)
	}
}
