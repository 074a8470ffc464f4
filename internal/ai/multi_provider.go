package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// MultiProvider tries each configured provider in order until one returns a
// completion. A run's model stage fails only when every provider fails.
type MultiProvider struct {
	providers []Provider
}

// NewMultiProvider creates a new multi-provider fallback chain
func NewMultiProvider(providers ...Provider) *MultiProvider {
	if len(providers) == 0 {
		panic("at least one provider required")
	}
	return &MultiProvider{
		providers: providers,
	}
}

func (m *MultiProvider) Name() string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return "Multi[" + strings.Join(names, "+") + "]"
}

func (m *MultiProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error
	for i, provider := range m.providers {
		log.Printf("[MultiProvider] Trying %s (attempt %d/%d)...", provider.Name(), i+1, len(m.providers))
		text, err := provider.Complete(ctx, systemPrompt, userPrompt)
		if err == nil {
			return text, nil
		}
		log.Printf("[MultiProvider] %s failed: %v", provider.Name(), err)
		lastErr = err
	}
	return "", fmt.Errorf("all providers failed: %w", lastErr)
}
