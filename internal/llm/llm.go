// Package llm defines the completion interface the grader uses and selects a
// backend by provider name.
package llm

import (
	"context"
	"strings"

	"github.com/agentstation/gradesync/pkg/constants"
	"github.com/agentstation/gradesync/pkg/errors"
)

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Request is a single system+user completion request.
type Request struct {
	Model       string
	System      string
	User        string
	Temperature float64
	// JSON asks the backend to return a single JSON object.
	JSON bool
}

// Client produces a completion for a request.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Factory builds a Client for one provider.
type Factory func(apiKey, baseURL string) (Client, error)

var factories = map[string]Factory{}

// Register makes a backend available to New. Backends register themselves
// from the command wiring so this package does not import them.
func Register(provider string, f Factory) {
	factories[strings.ToLower(provider)] = f
}

// New returns the client for provider. An empty provider selects OpenAI.
func New(provider, apiKey, baseURL string) (Client, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = ProviderOpenAI
	}
	f, ok := factories[provider]
	if !ok {
		return nil, errors.NewValidationError("llm_provider", provider, "unsupported provider (want openai or gemini)")
	}
	return f(apiKey, baseURL)
}

// DefaultModel returns the model used for provider when none is configured.
func DefaultModel(provider string) string {
	if strings.EqualFold(strings.TrimSpace(provider), ProviderGemini) {
		return constants.DefaultGeminiModel
	}
	return constants.DefaultModel
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f ClientFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
