package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/zlisto/financial-analyst-bot/internal/search"
)

const defaultAPIURL = "https://api.tavily.com/search"

// Client is a Tavily Search API client used as the fallback news provider.
type Client struct {
	apiKey string
	apiURL string
	client *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.apiURL = url
	}
}

// NewClient creates a new Tavily API client
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		apiURL: defaultAPIURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchRequest is the Tavily search request payload
type SearchRequest struct {
	Query       string `json:"query"`
	APIKey      string `json:"api_key"`
	SearchDepth string `json:"search_depth,omitempty"` // "basic" or "advanced"
	Topic       string `json:"topic,omitempty"`        // "general" or "news"
	Days        int    `json:"days,omitempty"`         // only for "news" topic - max age in days
	MaxResults  int    `json:"max_results,omitempty"`
}

// SearchResult is a single search result from Tavily
type SearchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"` // snippet
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date,omitempty"`
}

// SearchResponse is the Tavily search response
type SearchResponse struct {
	Query        string         `json:"query"`
	Results      []SearchResult `json:"results"`
	ResponseTime float64        `json:"response_time"`
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return "tavily"
}

// SearchNews implements search.SearchProvider, restricted to news from the
// past day to match the pipeline's recency window.
func (c *Client) SearchNews(ctx context.Context, query string, maxResults int) ([]search.Article, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	reqBody := SearchRequest{
		Query:       query,
		APIKey:      c.apiKey,
		SearchDepth: "basic",
		Topic:       "news",
		Days:        1,
		MaxResults:  maxResults,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	log.Printf("[Tavily] Searching news for: %q (max %d results)", query, maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api error: %d %s", resp.StatusCode, string(bodyBytes))
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var articles []search.Article
	for _, r := range searchResp.Results {
		if r.Title == "" || r.URL == "" {
			continue
		}
		articles = append(articles, search.Article{
			Title:    r.Title,
			URL:      r.URL,
			Snippet:  r.Content,
			Date:     r.PublishedDate,
			Provider: "tavily",
		})
	}

	log.Printf("[Tavily] Found %d results for query: %s", len(articles), query)
	return articles, nil
}
