package serpapi

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestParseNewsResults(t *testing.T) {
	results := map[string]interface{}{
		"news_results": []interface{}{
			map[string]interface{}{
				"title":   "Bitcoin breaks $100k",
				"link":    "https://example.com/btc-100k",
				"snippet": "Bitcoin crossed the six-figure mark for the first time.",
				"source":  "CoinDesk",
				"date":    "2 hours ago",
			},
			map[string]interface{}{
				"title": "ETF inflows accelerate",
				"link":  "https://example.com/etf",
				"source": map[string]interface{}{
					"name": "Bloomberg",
				},
			},
		},
	}

	articles := parseNewsResults(results, 10)

	assert.Equal(t, 2, len(articles))
	assert.Equal(t, "Bitcoin breaks $100k", articles[0].Title)
	assert.Equal(t, "https://example.com/btc-100k", articles[0].URL)
	assert.Equal(t, "Bitcoin crossed the six-figure mark for the first time.", articles[0].Snippet)
	assert.Equal(t, "CoinDesk", articles[0].Source)
	assert.Equal(t, "2 hours ago", articles[0].Date)
	assert.Equal(t, "serpapi", articles[0].Provider)
	assert.Equal(t, "Bloomberg", articles[1].Source)
}

func TestParseNewsResultsSkipsIncompleteItems(t *testing.T) {
	results := map[string]interface{}{
		"news_results": []interface{}{
			map[string]interface{}{"title": "No link here"},
			map[string]interface{}{"link": "https://example.com/no-title"},
			"not even an object",
			map[string]interface{}{
				"title": "Valid",
				"link":  "https://example.com/valid",
			},
		},
	}

	articles := parseNewsResults(results, 10)

	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "Valid", articles[0].Title)
}

func TestParseNewsResultsHonorsMaxResults(t *testing.T) {
	var items []interface{}
	for i := 0; i < 15; i++ {
		items = append(items, map[string]interface{}{
			"title": "Article",
			"link":  "https://example.com/article",
		})
	}
	results := map[string]interface{}{"news_results": items}

	articles := parseNewsResults(results, 10)

	assert.Equal(t, 10, len(articles))
}

func TestParseNewsResultsMissingNode(t *testing.T) {
	articles := parseNewsResults(map[string]interface{}{"organic_results": []interface{}{}}, 10)

	assert.Equal(t, 0, len(articles))
}

func TestSearchNewsRequiresAPIKey(t *testing.T) {
	client := NewClient("")

	_, err := client.SearchNews(context.Background(), "Bitcoin", 10)
	if err == nil {
		t.Fatal("expected error when API key is empty")
	}
}
