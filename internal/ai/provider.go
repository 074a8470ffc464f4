package ai

import "context"

// Provider defines the interface for text completion providers
type Provider interface {
	Name() string

	// Complete sends one prompt pair to the model and returns the raw
	// completion text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
