package search

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"
)

type staticProvider struct {
	name string
}

func (p *staticProvider) Name() string { return p.name }

func (p *staticProvider) SearchNews(ctx context.Context, query string, maxResults int) ([]Article, error) {
	return nil, nil
}

func TestRegistryKeepsPriorityOrder(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&staticProvider{name: "serpapi"})
	registry.Register(&staticProvider{name: "tavily"})

	assert.Equal(t, 2, registry.Count())
	assert.Equal(t, []string{"serpapi", "tavily"}, registry.Names())

	providers := registry.Providers()
	assert.Equal(t, "serpapi", providers[0].Name())
	assert.Equal(t, "tavily", providers[1].Name())
}

func TestEmptyRegistry(t *testing.T) {
	registry := NewRegistry()

	assert.Equal(t, 0, registry.Count())
	assert.Equal(t, 0, len(registry.Providers()))
}
