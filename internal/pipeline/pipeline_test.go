package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/zlisto/financial-analyst-bot/internal/analysis"
	"github.com/zlisto/financial-analyst-bot/internal/search"
)

type stubSearchProvider struct {
	name     string
	articles []search.Article
	err      error
	calls    int
}

func (s *stubSearchProvider) Name() string { return s.name }

func (s *stubSearchProvider) SearchNews(ctx context.Context, query string, maxResults int) ([]search.Article, error) {
	s.calls++
	return s.articles, s.err
}

type stubAnalyst struct {
	failTitles      map[string]bool
	overview        analysis.MarketOverview
	recommendation  analysis.Recommendation
	recommendErr    error
	synthesisErr    error
	synthesisCalls  int
	synthesisInput  []analysis.ArticleSummary
	summaryContents map[string]string
}

func (a *stubAnalyst) SummarizeArticle(ctx context.Context, article search.Article, content string) (analysis.ArticleSummary, error) {
	if a.summaryContents == nil {
		a.summaryContents = map[string]string{}
	}
	a.summaryContents[article.Title] = content
	if a.failTitles[article.Title] {
		return analysis.ArticleSummary{}, fmt.Errorf("unparseable model output")
	}
	return analysis.ArticleSummary{
		Source:    article,
		KeyPoints: []string{"point"},
		Sentiment: analysis.SentimentNeutral,
	}, nil
}

func (a *stubAnalyst) SynthesizeOverview(ctx context.Context, summaries []analysis.ArticleSummary) (analysis.MarketOverview, error) {
	a.synthesisCalls++
	a.synthesisInput = summaries
	return a.overview, a.synthesisErr
}

func (a *stubAnalyst) Recommend(ctx context.Context, overview analysis.MarketOverview) (analysis.Recommendation, error) {
	return a.recommendation, a.recommendErr
}

type stubMailer struct {
	err   error
	sent  []string
	names []string
}

func (m *stubMailer) SendReport(ctx context.Context, html, attachmentName string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, html)
	m.names = append(m.names, attachmentName)
	return nil
}

type stubScraper struct {
	content string
	err     error
}

func (s *stubScraper) Scrape(ctx context.Context, url string) (string, error) {
	return s.content, s.err
}

func makeArticles(n int) []search.Article {
	articles := make([]search.Article, 0, n)
	for i := 0; i < n; i++ {
		articles = append(articles, search.Article{
			Title:   fmt.Sprintf("Article %d", i+1),
			URL:     fmt.Sprintf("https://example.com/%d", i+1),
			Snippet: "snippet",
		})
	}
	return articles
}

func registryWith(providers ...search.SearchProvider) *search.Registry {
	registry := search.NewRegistry()
	for _, p := range providers {
		registry.Register(p)
	}
	return registry
}

func holdAnalyst() *stubAnalyst {
	return &stubAnalyst{
		overview: analysis.MarketOverview{
			Narrative: "Mixed signals across sources.",
			Sentiment: analysis.SentimentNeutral,
		},
		recommendation: analysis.Recommendation{
			Action:     analysis.ActionHold,
			Confidence: 55,
			Rationale:  "Wait for confirmation.",
		},
	}
}

func TestRunHappyPathWithPartialDrops(t *testing.T) {
	provider := &stubSearchProvider{name: "serpapi", articles: makeArticles(10)}
	analyst := holdAnalyst()
	analyst.failTitles = map[string]bool{"Article 3": true, "Article 7": true}
	mailer := &stubMailer{}

	runner := NewRunner(registryWith(provider), nil, analyst, mailer, "Bitcoin news", 10)
	err := runner.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, analyst.synthesisCalls)
	assert.Equal(t, 8, len(analyst.synthesisInput))
	assert.Equal(t, 1, len(mailer.sent))

	html := mailer.sent[0]
	if !strings.Contains(html, "HOLD") {
		t.Error("report missing action HOLD")
	}
	if !strings.Contains(html, "55") {
		t.Error("report missing confidence 55")
	}
	if !strings.HasPrefix(mailer.names[0], "bitcoin_report_") {
		t.Errorf("unexpected attachment name %q", mailer.names[0])
	}
}

func TestRunZeroArticlesIsSearchUnavailable(t *testing.T) {
	provider := &stubSearchProvider{name: "serpapi"}
	mailer := &stubMailer{}

	runner := NewRunner(registryWith(provider), nil, holdAnalyst(), mailer, "Bitcoin news", 10)
	err := runner.Run(context.Background())

	if !errors.Is(err, ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
	assert.Equal(t, 0, len(mailer.sent))
}

func TestRunProviderErrorIsSearchUnavailable(t *testing.T) {
	provider := &stubSearchProvider{name: "serpapi", err: fmt.Errorf("quota exceeded")}

	runner := NewRunner(registryWith(provider), nil, holdAnalyst(), &stubMailer{}, "Bitcoin news", 10)
	err := runner.Run(context.Background())

	if !errors.Is(err, ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestRunFallsThroughToSecondaryProvider(t *testing.T) {
	primary := &stubSearchProvider{name: "serpapi", err: fmt.Errorf("quota exceeded")}
	secondary := &stubSearchProvider{name: "tavily", articles: makeArticles(3)}
	mailer := &stubMailer{}

	runner := NewRunner(registryWith(primary, secondary), nil, holdAnalyst(), mailer, "Bitcoin news", 10)
	err := runner.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
	assert.Equal(t, 1, len(mailer.sent))
}

func TestRunCapsArticlesAtMax(t *testing.T) {
	provider := &stubSearchProvider{name: "serpapi", articles: makeArticles(15)}
	analyst := holdAnalyst()

	runner := NewRunner(registryWith(provider), nil, analyst, &stubMailer{}, "Bitcoin news", 10)
	err := runner.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 10, len(analyst.synthesisInput))
}

func TestRunAllSummarizationsFailIsSynthesisFailed(t *testing.T) {
	provider := &stubSearchProvider{name: "serpapi", articles: makeArticles(3)}
	analyst := holdAnalyst()
	analyst.failTitles = map[string]bool{"Article 1": true, "Article 2": true, "Article 3": true}
	mailer := &stubMailer{}

	runner := NewRunner(registryWith(provider), nil, analyst, mailer, "Bitcoin news", 10)
	err := runner.Run(context.Background())

	if !errors.Is(err, ErrSynthesisFailed) {
		t.Fatalf("expected ErrSynthesisFailed, got %v", err)
	}
	// No synthesis model call is made for an empty batch and nothing is sent.
	assert.Equal(t, 0, analyst.synthesisCalls)
	assert.Equal(t, 0, len(mailer.sent))
}

func TestRunSynthesisErrorIsFatal(t *testing.T) {
	provider := &stubSearchProvider{name: "serpapi", articles: makeArticles(3)}
	analyst := holdAnalyst()
	analyst.synthesisErr = fmt.Errorf("model unavailable")
	mailer := &stubMailer{}

	runner := NewRunner(registryWith(provider), nil, analyst, mailer, "Bitcoin news", 10)
	err := runner.Run(context.Background())

	if !errors.Is(err, ErrSynthesisFailed) {
		t.Fatalf("expected ErrSynthesisFailed, got %v", err)
	}
	assert.Equal(t, 0, len(mailer.sent))
}

func TestRunRecommendationErrorIsFatal(t *testing.T) {
	provider := &stubSearchProvider{name: "serpapi", articles: makeArticles(3)}
	analyst := holdAnalyst()
	analyst.recommendErr = fmt.Errorf("unparseable action")
	mailer := &stubMailer{}

	runner := NewRunner(registryWith(provider), nil, analyst, mailer, "Bitcoin news", 10)
	err := runner.Run(context.Background())

	if !errors.Is(err, ErrRecommendationFailed) {
		t.Fatalf("expected ErrRecommendationFailed, got %v", err)
	}
	assert.Equal(t, 0, len(mailer.sent))
}

func TestRunDeliveryErrorIsFatal(t *testing.T) {
	provider := &stubSearchProvider{name: "serpapi", articles: makeArticles(3)}
	mailer := &stubMailer{err: fmt.Errorf("535 authentication rejected")}

	runner := NewRunner(registryWith(provider), nil, holdAnalyst(), mailer, "Bitcoin news", 10)
	err := runner.Run(context.Background())

	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
	assert.Equal(t, 0, len(mailer.sent))
}

func TestRunScrapedContentReachesSummarization(t *testing.T) {
	provider := &stubSearchProvider{name: "serpapi", articles: makeArticles(1)}
	analyst := holdAnalyst()
	scraper := &stubScraper{content: "full page text"}

	runner := NewRunner(registryWith(provider), scraper, analyst, &stubMailer{}, "Bitcoin news", 10)
	err := runner.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, "full page text", analyst.summaryContents["Article 1"])
}

func TestRunScrapeFailureFallsBackToSnippet(t *testing.T) {
	provider := &stubSearchProvider{name: "serpapi", articles: makeArticles(1)}
	analyst := holdAnalyst()
	scraper := &stubScraper{err: fmt.Errorf("403 forbidden")}

	runner := NewRunner(registryWith(provider), scraper, analyst, &stubMailer{}, "Bitcoin news", 10)
	err := runner.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, "", analyst.summaryContents["Article 1"])
}
