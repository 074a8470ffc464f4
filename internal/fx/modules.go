package fx

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/fx"

	"github.com/zlisto/financial-analyst-bot/internal/ai"
	"github.com/zlisto/financial-analyst-bot/internal/analysis"
	"github.com/zlisto/financial-analyst-bot/internal/config"
	"github.com/zlisto/financial-analyst-bot/internal/mail"
	"github.com/zlisto/financial-analyst-bot/internal/pipeline"
	"github.com/zlisto/financial-analyst-bot/internal/scheduler"
	"github.com/zlisto/financial-analyst-bot/internal/scraper"
	"github.com/zlisto/financial-analyst-bot/internal/search"
	"github.com/zlisto/financial-analyst-bot/internal/serpapi"
	"github.com/zlisto/financial-analyst-bot/internal/tavily"
)

// ============================================================================
// FX MODULES - Group related providers together
// ============================================================================

// ConfigModule provides validated application configuration
var ConfigModule = fx.Module("config",
	fx.Provide(LoadConfig),
)

// SearchModule provides the news search registry
var SearchModule = fx.Module("search",
	fx.Provide(NewSearchRegistry),
)

// ScraperModule provides article content scraping
var ScraperModule = fx.Module("scraper",
	fx.Provide(NewScraper),
)

// AIModule provides the completion provider chain and the analyst
var AIModule = fx.Module("ai",
	fx.Provide(
		NewCompletionProvider,
		NewAnalyst,
	),
)

// MailModule provides SMTP report delivery
var MailModule = fx.Module("mail",
	fx.Provide(NewMailSender),
)

// PipelineModule provides the end-to-end analysis runner
var PipelineModule = fx.Module("pipeline",
	fx.Provide(NewPipelineRunner),
)

// SchedulerModule provides the daily worker and ties it to the app lifecycle
var SchedulerModule = fx.Module("scheduler",
	fx.Provide(NewSchedulerWorker),
	fx.Invoke(StartSchedulerWorker),
)

// ============================================================================
// PROVIDER FUNCTIONS - Constructors that FX will call automatically
// ============================================================================

// LoadConfig loads and validates configuration; a missing required variable
// fails app start.
func LoadConfig() (config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	log.Printf("[FX] Config loaded")
	return cfg, nil
}

// NewSearchRegistry registers the configured search providers, SerpApi first
func NewSearchRegistry(cfg config.Config) *search.Registry {
	registry := search.NewRegistry()

	if cfg.SerpAPIKey != "" {
		registry.Register(serpapi.NewClient(cfg.SerpAPIKey))
		log.Printf("[FX] SearchRegistry: SerpApi registered")
	}

	if cfg.TavilyAPIKey != "" {
		registry.Register(tavily.NewClient(cfg.TavilyAPIKey))
		log.Printf("[FX] SearchRegistry: Tavily registered")
	}

	log.Printf("[FX] SearchRegistry initialized with %d providers", registry.Count())
	return registry
}

// NewScraper creates the article content scraper
func NewScraper() *scraper.Scraper {
	s := scraper.NewScraper()
	log.Printf("[FX] Scraper initialized")
	return s
}

// NewCompletionProvider builds the model fallback chain in configured order:
// OpenAI, then Anthropic, then Gemini.
func NewCompletionProvider(cfg config.Config) (ai.Provider, error) {
	var providers []ai.Provider

	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, ai.NewOpenAI(cfg.OpenAIAPIKey))
		log.Printf("[FX] CompletionProvider: OpenAI registered")
	}
	if cfg.AnthropicAPIKey != "" {
		providers = append(providers, ai.NewAnthropic(cfg.AnthropicAPIKey))
		log.Printf("[FX] CompletionProvider: Anthropic registered")
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGemini(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		providers = append(providers, gemini)
		log.Printf("[FX] CompletionProvider: Gemini registered")
	}

	switch len(providers) {
	case 0:
		return nil, fmt.Errorf("no completion provider configured")
	case 1:
		return providers[0], nil
	default:
		return ai.NewMultiProvider(providers...), nil
	}
}

// NewAnalyst creates the model-backed analysis stages
func NewAnalyst(provider ai.Provider) *analysis.Analyst {
	a := analysis.NewAnalyst(provider)
	log.Printf("[FX] Analyst initialized (%s)", provider.Name())
	return a
}

// NewMailSender creates the SMTP report sender
func NewMailSender(cfg config.Config) *mail.Sender {
	s := mail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.GmailAddress, cfg.GmailPassword, cfg.RecipientEmail)
	log.Printf("[FX] MailSender initialized (%s:%d -> %s)", cfg.SMTPHost, cfg.SMTPPort, cfg.RecipientEmail)
	return s
}

// NewPipelineRunner assembles the end-to-end analysis pipeline
func NewPipelineRunner(registry *search.Registry, sc *scraper.Scraper, analyst *analysis.Analyst, sender *mail.Sender, cfg config.Config) *pipeline.Runner {
	r := pipeline.NewRunner(registry, sc, analyst, sender, cfg.SearchQuery, cfg.MaxArticles)
	log.Printf("[FX] Pipeline runner initialized")
	return r
}

// NewSchedulerWorker creates the daily trigger around the pipeline
func NewSchedulerWorker(runner *pipeline.Runner, cfg config.Config) (*scheduler.Worker, error) {
	w, err := scheduler.NewWorker(runner, cfg.ScheduleTime, cfg.Timezone)
	if err != nil {
		return nil, err
	}
	log.Printf("[FX] Scheduler worker initialized (daily at %s %s)", cfg.ScheduleTime, cfg.Timezone)
	return w, nil
}

// StartSchedulerWorker ties the worker to the fx lifecycle
func StartSchedulerWorker(lc fx.Lifecycle, w *scheduler.Worker) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return w.Start()
		},
		OnStop: func(ctx context.Context) error {
			w.Stop()
			return nil
		},
	})
}
