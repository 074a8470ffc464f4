package serpapi

import (
	"context"
	"fmt"
	"log"

	g "github.com/serpapi/google-search-results-golang"

	"github.com/zlisto/financial-analyst-bot/internal/search"
)

// Client searches Google News through SerpApi.
type Client struct {
	apiKey string
}

// NewClient creates a new SerpApi news client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
	}
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return "serpapi"
}

// SearchNews performs a Google News search restricted to the past day and
// returns the results most recent first, as Google ranks them.
func (c *Client) SearchNews(ctx context.Context, query string, maxResults int) ([]search.Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("SerpApi API key is not set")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parameter := map[string]string{
		"engine":        "google",
		"q":             query,
		"tbm":           "nws",
		"tbs":           "qdr:d",
		"num":           fmt.Sprintf("%d", maxResults),
		"google_domain": "google.com",
		"gl":            "us",
		"hl":            "en",
	}

	log.Printf("[SerpApi] Searching news for: %q", query)
	gs := g.NewGoogleSearch(parameter, c.apiKey)
	results, err := gs.GetJSON()
	if err != nil {
		return nil, fmt.Errorf("serpapi search failed: %w", err)
	}

	articles := parseNewsResults(results, maxResults)
	log.Printf("[SerpApi] Found %d news results", len(articles))
	return articles, nil
}

// parseNewsResults walks the news_results node of a SerpApi response. Items
// missing a title or link are skipped.
func parseNewsResults(results map[string]interface{}, maxResults int) []search.Article {
	newsResults, ok := results["news_results"].([]interface{})
	if !ok {
		log.Printf("[SerpApi] No news_results found in response")
		return nil
	}

	var articles []search.Article
	for _, item := range newsResults {
		res, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		title, _ := res["title"].(string)
		link, _ := res["link"].(string)
		snippet, _ := res["snippet"].(string)
		date, _ := res["date"].(string)

		if title == "" || link == "" {
			continue
		}

		articles = append(articles, search.Article{
			Title:    title,
			URL:      link,
			Snippet:  snippet,
			Source:   parseSource(res["source"]),
			Date:     date,
			Provider: "serpapi",
		})
		if len(articles) >= maxResults {
			break
		}
	}
	return articles
}

// parseSource handles both response shapes SerpApi uses: a plain string for
// tbm=nws and an object with a name field for the google_news engine.
func parseSource(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case map[string]interface{}:
		name, _ := s["name"].(string)
		return name
	default:
		return ""
	}
}
