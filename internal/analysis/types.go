package analysis

import (
	"fmt"
	"strings"

	"github.com/zlisto/financial-analyst-bot/internal/search"
)

// Sentiment is the market-mood label attached to summaries and overviews.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// ParseSentiment normalizes and validates a model-produced sentiment label
func ParseSentiment(s string) (Sentiment, error) {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentBullish:
		return SentimentBullish, nil
	case SentimentBearish:
		return SentimentBearish, nil
	case SentimentNeutral:
		return SentimentNeutral, nil
	default:
		return "", fmt.Errorf("invalid sentiment %q", s)
	}
}

// Action is the trading decision vocabulary.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// ParseAction normalizes and validates a model-produced action
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToUpper(strings.TrimSpace(s))) {
	case ActionBuy:
		return ActionBuy, nil
	case ActionSell:
		return ActionSell, nil
	case ActionHold:
		return ActionHold, nil
	default:
		return "", fmt.Errorf("invalid action %q", s)
	}
}

// ArticleSummary is the structured digest of one discovered article. It
// lives only for the duration of a run.
type ArticleSummary struct {
	Source    search.Article
	KeyPoints []string
	Sentiment Sentiment
}

// MarketOverview merges all surviving article summaries into one narrative.
type MarketOverview struct {
	Narrative string
	Sentiment Sentiment
	KeyThemes []string
}

// Recommendation is the trading decision derived from the overview.
type Recommendation struct {
	Action      Action
	Confidence  int // 0-100
	RiskFactors []string
	Rationale   string
}
