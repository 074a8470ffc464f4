package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/zlisto/financial-analyst-bot/internal/analysis"
	"github.com/zlisto/financial-analyst-bot/internal/report"
	"github.com/zlisto/financial-analyst-bot/internal/search"
)

// Run failure taxonomy. Summarization failures are per-article: the article
// is dropped and the run continues; the other four abort the run before
// anything is sent.
var (
	ErrSearchUnavailable    = errors.New("search unavailable")
	ErrSummarizationFailed  = errors.New("summarization failed")
	ErrSynthesisFailed      = errors.New("synthesis failed")
	ErrRecommendationFailed = errors.New("recommendation failed")
	ErrDeliveryFailed       = errors.New("delivery failed")
)

// Analyst runs the model-backed stages.
type Analyst interface {
	SummarizeArticle(ctx context.Context, article search.Article, content string) (analysis.ArticleSummary, error)
	SynthesizeOverview(ctx context.Context, summaries []analysis.ArticleSummary) (analysis.MarketOverview, error)
	Recommend(ctx context.Context, overview analysis.MarketOverview) (analysis.Recommendation, error)
}

// Scraper fetches article page text. Best effort; failures fall back to the
// article snippet.
type Scraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// Mailer delivers the rendered report.
type Mailer interface {
	SendReport(ctx context.Context, html, attachmentName string) error
}

// Runner executes one end-to-end analysis run: discover, summarize,
// synthesize, recommend, render, deliver. Runs are stateless; nothing
// survives past delivery.
type Runner struct {
	registry    *search.Registry
	scraper     Scraper
	analyst     Analyst
	mailer      Mailer
	query       string
	maxArticles int
}

// NewRunner creates a Runner. scraper may be nil to summarize from
// snippets alone.
func NewRunner(registry *search.Registry, scraper Scraper, analyst Analyst, mailer Mailer, query string, maxArticles int) *Runner {
	return &Runner{
		registry:    registry,
		scraper:     scraper,
		analyst:     analyst,
		mailer:      mailer,
		query:       query,
		maxArticles: maxArticles,
	}
}

// Run executes the pipeline once. The returned error wraps one of the
// taxonomy sentinels so callers can classify the failure with errors.Is.
func (r *Runner) Run(ctx context.Context) error {
	started := time.Now()
	log.Printf("[Pipeline] Run started (query: %q, max %d articles)", r.query, r.maxArticles)

	articles, err := r.discover(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	log.Printf("[Pipeline] Discovered %d articles", len(articles))

	summaries := r.summarize(ctx, articles)
	log.Printf("[Pipeline] %d/%d articles summarized", len(summaries), len(articles))

	if len(summaries) == 0 {
		return fmt.Errorf("%w: no articles survived summarization", ErrSynthesisFailed)
	}

	overview, err := r.analyst.SynthesizeOverview(ctx, summaries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}

	recommendation, err := r.analyst.Recommend(ctx, overview)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecommendationFailed, err)
	}

	html, err := report.Render(report.Data{
		GeneratedAt:    started,
		Articles:       articles,
		Overview:       overview,
		Recommendation: recommendation,
	})
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if err := r.mailer.SendReport(ctx, html, report.AttachmentName(started)); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	log.Printf("[Pipeline] Run completed in %s (action: %s, confidence: %d)",
		time.Since(started).Round(time.Second), recommendation.Action, recommendation.Confidence)
	return nil
}

// discover tries each provider in registry order and keeps the first
// non-empty result set, capped at maxArticles.
func (r *Runner) discover(ctx context.Context) ([]search.Article, error) {
	var lastErr error
	for _, provider := range r.registry.Providers() {
		articles, err := provider.SearchNews(ctx, r.query, r.maxArticles)
		if err != nil {
			log.Printf("[Pipeline] Provider %s error: %v", provider.Name(), err)
			lastErr = err
			continue
		}
		if len(articles) == 0 {
			log.Printf("[Pipeline] Provider %s returned no articles", provider.Name())
			continue
		}
		if len(articles) > r.maxArticles {
			articles = articles[:r.maxArticles]
		}
		return articles, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("no provider returned any articles")
}

// summarize processes articles one at a time in discovery order. A failed
// article is logged and dropped, never retried.
func (r *Runner) summarize(ctx context.Context, articles []search.Article) []analysis.ArticleSummary {
	summaries := make([]analysis.ArticleSummary, 0, len(articles))
	for i, article := range articles {
		log.Printf("[Pipeline] Summarizing article %d/%d: %s", i+1, len(articles), article.Title)

		content := ""
		if r.scraper != nil {
			text, err := r.scraper.Scrape(ctx, article.URL)
			if err != nil {
				log.Printf("[Pipeline] Scrape failed for %s, using snippet only: %v", article.URL, err)
			} else {
				content = text
			}
		}

		summary, err := r.analyst.SummarizeArticle(ctx, article, content)
		if err != nil {
			log.Printf("[Pipeline] Dropping article %q: %v: %v", article.Title, ErrSummarizationFailed, err)
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
