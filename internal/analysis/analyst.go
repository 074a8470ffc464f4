package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/zlisto/financial-analyst-bot/internal/ai"
	"github.com/zlisto/financial-analyst-bot/internal/search"
	"github.com/zlisto/financial-analyst-bot/prompts"
)

// maxArticleChars bounds how much scraped page text goes into one summary
// prompt.
const maxArticleChars = 12000

// Analyst runs the model-backed stages: per-article summarization, market
// synthesis, and the trading recommendation.
type Analyst struct {
	provider ai.Provider
}

// NewAnalyst creates an Analyst on top of a completion provider
func NewAnalyst(provider ai.Provider) *Analyst {
	return &Analyst{provider: provider}
}

// SummarizeArticle condenses one article into key points plus a sentiment
// label. content is the scraped page text and may be empty, in which case
// the model works from the title and snippet alone.
func (a *Analyst) SummarizeArticle(ctx context.Context, article search.Article, content string) (ArticleSummary, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", article.Title)
	if article.Source != "" {
		fmt.Fprintf(&sb, "Publication: %s\n", article.Source)
	}
	if article.Date != "" {
		fmt.Fprintf(&sb, "Published: %s\n", article.Date)
	}
	if article.Snippet != "" {
		fmt.Fprintf(&sb, "Snippet: %s\n", article.Snippet)
	}
	if content != "" {
		fmt.Fprintf(&sb, "\nArticle text:\n%s\n", ai.TruncateToLimit(content, maxArticleChars))
	}

	raw, err := a.provider.Complete(ctx, prompts.ArticleSummary, sb.String())
	if err != nil {
		return ArticleSummary{}, fmt.Errorf("summary completion failed: %w", err)
	}

	var parsed struct {
		KeyPoints []string `json:"key_points"`
		Sentiment string   `json:"sentiment"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &parsed); err != nil {
		return ArticleSummary{}, fmt.Errorf("failed to parse summary response: %w", err)
	}

	keyPoints := trimNonEmpty(parsed.KeyPoints)
	if len(keyPoints) == 0 {
		return ArticleSummary{}, fmt.Errorf("summary contained no key points")
	}
	sentiment, err := ParseSentiment(parsed.Sentiment)
	if err != nil {
		return ArticleSummary{}, err
	}

	return ArticleSummary{
		Source:    article,
		KeyPoints: keyPoints,
		Sentiment: sentiment,
	}, nil
}

// SynthesizeOverview merges the surviving summaries into one market
// overview. An empty batch is rejected before any model call.
func (a *Analyst) SynthesizeOverview(ctx context.Context, summaries []ArticleSummary) (MarketOverview, error) {
	if len(summaries) == 0 {
		return MarketOverview{}, fmt.Errorf("no article summaries to synthesize")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Bitcoin article summaries from the past day (%d articles):\n\n", len(summaries))
	for i, s := range summaries {
		fmt.Fprintf(&sb, "%d. %s", i+1, s.Source.Title)
		if s.Source.Source != "" {
			fmt.Fprintf(&sb, " (%s)", s.Source.Source)
		}
		fmt.Fprintf(&sb, " [sentiment: %s]\n", s.Sentiment)
		for _, p := range s.KeyPoints {
			fmt.Fprintf(&sb, "   - %s\n", p)
		}
		sb.WriteString("\n")
	}

	raw, err := a.provider.Complete(ctx, prompts.MarketSynthesis, sb.String())
	if err != nil {
		return MarketOverview{}, fmt.Errorf("synthesis completion failed: %w", err)
	}

	var parsed struct {
		Narrative string   `json:"narrative"`
		Sentiment string   `json:"sentiment"`
		KeyThemes []string `json:"key_themes"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &parsed); err != nil {
		return MarketOverview{}, fmt.Errorf("failed to parse synthesis response: %w", err)
	}
	if strings.TrimSpace(parsed.Narrative) == "" {
		return MarketOverview{}, fmt.Errorf("synthesis returned an empty narrative")
	}
	sentiment, err := ParseSentiment(parsed.Sentiment)
	if err != nil {
		return MarketOverview{}, err
	}

	log.Printf("[Analyst] Synthesized overview from %d summaries (sentiment: %s)", len(summaries), sentiment)
	return MarketOverview{
		Narrative: strings.TrimSpace(parsed.Narrative),
		Sentiment: sentiment,
		KeyThemes: trimNonEmpty(parsed.KeyThemes),
	}, nil
}

// Recommend derives the BUY/SELL/HOLD decision from the overview.
func (a *Analyst) Recommend(ctx context.Context, overview MarketOverview) (Recommendation, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Market overview:\n%s\n\n", overview.Narrative)
	fmt.Fprintf(&sb, "Overall sentiment: %s\n", overview.Sentiment)
	if len(overview.KeyThemes) > 0 {
		sb.WriteString("Key themes:\n")
		for _, t := range overview.KeyThemes {
			fmt.Fprintf(&sb, "- %s\n", t)
		}
	}

	raw, err := a.provider.Complete(ctx, prompts.TradingRecommendation, sb.String())
	if err != nil {
		return Recommendation{}, fmt.Errorf("recommendation completion failed: %w", err)
	}

	var parsed struct {
		Action      string   `json:"action"`
		Confidence  float64  `json:"confidence"`
		RiskFactors []string `json:"risk_factors"`
		Rationale   string   `json:"rationale"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &parsed); err != nil {
		return Recommendation{}, fmt.Errorf("failed to parse recommendation response: %w", err)
	}

	action, err := ParseAction(parsed.Action)
	if err != nil {
		return Recommendation{}, err
	}
	if strings.TrimSpace(parsed.Rationale) == "" {
		return Recommendation{}, fmt.Errorf("recommendation returned an empty rationale")
	}

	confidence := int(math.Round(parsed.Confidence))
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	log.Printf("[Analyst] Recommendation: %s (confidence %d)", action, confidence)
	return Recommendation{
		Action:      action,
		Confidence:  confidence,
		RiskFactors: trimNonEmpty(parsed.RiskFactors),
		Rationale:   strings.TrimSpace(parsed.Rationale),
	}, nil
}

// cleanJSON strips markdown code fences and any prose around the JSON
// object. Models wrap output in ```json blocks despite instructions.
func cleanJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(strings.TrimSpace(response), "```")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		response = response[start : end+1]
	}
	return response
}

func trimNonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
