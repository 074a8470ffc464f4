package search

import "context"

// Article is one news result from any provider.
type Article struct {
	Title    string
	URL      string
	Snippet  string
	Source   string // publication name, e.g. "CoinDesk"
	Date     string // publication date as reported by the provider
	Provider string // "serpapi", "tavily", etc.
}

// SearchProvider is the interface all news search providers implement.
type SearchProvider interface {
	// Name returns the provider identifier (e.g., "serpapi", "tavily")
	Name() string

	// SearchNews returns recent news articles for the query, most recent
	// first, at most maxResults of them.
	SearchNews(ctx context.Context, query string, maxResults int) ([]Article, error)
}

// Registry holds the configured search providers in priority order. The
// first provider that yields usable articles wins; later ones are fallbacks.
type Registry struct {
	providers []SearchProvider
}

// NewRegistry creates an empty provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: []SearchProvider{},
	}
}

// Register appends a provider at the lowest priority
func (r *Registry) Register(provider SearchProvider) {
	r.providers = append(r.providers, provider)
}

// Providers returns all registered providers in priority order
func (r *Registry) Providers() []SearchProvider {
	return r.providers
}

// Count returns the number of registered providers
func (r *Registry) Count() int {
	return len(r.providers)
}

// Names returns the provider identifiers in priority order, for logging.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}
