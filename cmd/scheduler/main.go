package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	appfx "github.com/zlisto/financial-analyst-bot/internal/fx"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		appfx.ConfigModule,    // Provides: config.Config
		appfx.SearchModule,    // Provides: *search.Registry
		appfx.ScraperModule,   // Provides: *scraper.Scraper
		appfx.AIModule,        // Provides: ai.Provider, *analysis.Analyst
		appfx.MailModule,      // Provides: *mail.Sender
		appfx.PipelineModule,  // Provides: *pipeline.Runner
		appfx.SchedulerModule, // Runs the analysis now, then daily

		// Use simple console logger for cleaner output
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ConsoleLogger{W: log.Writer()}
		}),
	)

	// Run blocks until the app receives a shutdown signal
	app.Run()
}
