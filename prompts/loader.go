package prompts

import (
	_ "embed"
)

//go:embed article_summary.txt
var ArticleSummary string

//go:embed market_synthesis.txt
var MarketSynthesis string

//go:embed trading_recommendation.txt
var TradingRecommendation string
