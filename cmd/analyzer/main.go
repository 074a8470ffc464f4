package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/zlisto/financial-analyst-bot/internal/ai"
	"github.com/zlisto/financial-analyst-bot/internal/analysis"
	"github.com/zlisto/financial-analyst-bot/internal/config"
	"github.com/zlisto/financial-analyst-bot/internal/mail"
	"github.com/zlisto/financial-analyst-bot/internal/pipeline"
	"github.com/zlisto/financial-analyst-bot/internal/scraper"
	"github.com/zlisto/financial-analyst-bot/internal/search"
	"github.com/zlisto/financial-analyst-bot/internal/serpapi"
	"github.com/zlisto/financial-analyst-bot/internal/tavily"
)

// runTimeout bounds one full analysis run end to end.
const runTimeout = 30 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	registry := search.NewRegistry()
	if cfg.SerpAPIKey != "" {
		registry.Register(serpapi.NewClient(cfg.SerpAPIKey))
	}
	if cfg.TavilyAPIKey != "" {
		registry.Register(tavily.NewClient(cfg.TavilyAPIKey))
	}

	var providers []ai.Provider
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, ai.NewOpenAI(cfg.OpenAIAPIKey))
	}
	if cfg.AnthropicAPIKey != "" {
		providers = append(providers, ai.NewAnthropic(cfg.AnthropicAPIKey))
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGemini(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini: %v", err)
		}
		providers = append(providers, gemini)
	}

	var provider ai.Provider
	if len(providers) == 1 {
		provider = providers[0]
	} else {
		provider = ai.NewMultiProvider(providers...)
	}

	runner := pipeline.NewRunner(
		registry,
		scraper.NewScraper(),
		analysis.NewAnalyst(provider),
		mail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.GmailAddress, cfg.GmailPassword, cfg.RecipientEmail),
		cfg.SearchQuery,
		cfg.MaxArticles,
	)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := runner.Run(ctx); err != nil {
		log.Fatalf("Analysis run failed: %v", err)
	}
	log.Println("Analysis run completed successfully")
}
