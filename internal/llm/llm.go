package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts text-completion providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is one completion call.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
	// JSONObject asks the provider for a JSON object response when it supports it.
	// Leave false for array-shaped outputs.
	JSONObject bool
}

// Kind classifies gateway failures for logging and retry decisions.
type Kind string

const (
	KindTransport Kind = "transport"
	KindProvider  Kind = "provider"
	KindEmpty     Kind = "empty"
)

// ErrGenerationFailure matches every gateway failure via errors.Is.
var ErrGenerationFailure = errors.New("generation failure")

// GenerationError is the single error type returned by gateway implementations.
type GenerationError struct {
	Provider string
	Kind     Kind
	Status   int
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s %s failure (status %d): %v", e.Provider, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s failure: %v", e.Provider, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrGenerationFailure) match.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailure
}

// Transport wraps a network-level error.
func Transport(provider string, err error) error {
	return &GenerationError{Provider: provider, Kind: KindTransport, Err: err}
}

// Provider wraps an error reported by the provider.
func Provider(provider string, status int, err error) error {
	return &GenerationError{Provider: provider, Kind: KindProvider, Status: status, Err: err}
}

// Empty reports a completion with no text.
func Empty(provider string) error {
	return &GenerationError{Provider: provider, Kind: KindEmpty, Err: errors.New("empty completion")}
}

// KindOf returns the failure kind for err, or "" when err is not a gateway failure.
func KindOf(err error) Kind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return ""
}

// ErrNotConfigured is wrapped by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Complete always fails with a provider failure.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", Provider("placeholder", 0, ErrNotConfigured)
}
