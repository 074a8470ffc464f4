package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	SerpAPIKey      string
	TavilyAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string
	GmailAddress    string
	GmailPassword   string
	RecipientEmail  string
	SMTPHost        string
	SMTPPort        int
	SearchQuery     string
	MaxArticles     int
	ScheduleTime    string
	Timezone        string
}

// Load loads configuration from environment variables
func Load() Config {
	return Config{
		SerpAPIKey:      os.Getenv("SERPAPI_API_KEY"),
		TavilyAPIKey:    os.Getenv("TAVILY_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GmailAddress:    os.Getenv("GMAIL_ADDRESS"),
		GmailPassword:   os.Getenv("GMAIL_PASSWORD"),
		RecipientEmail:  os.Getenv("RECIPIENT_EMAIL"),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SearchQuery:     getEnv("SEARCH_QUERY", "Bitcoin BTC market price trading news today"),
		MaxArticles:     getEnvInt("MAX_ARTICLES", 10),
		ScheduleTime:    getEnv("SCHEDULE_TIME", "08:00"),
		Timezone:        getEnv("TIMEZONE", "UTC"),
	}
}

// Validate reports every missing required setting in one error so a bad
// deployment fails the first start with the full list.
func (c Config) Validate() error {
	var missing []string
	if c.SerpAPIKey == "" && c.TavilyAPIKey == "" {
		missing = append(missing, "SERPAPI_API_KEY or TAVILY_API_KEY")
	}
	if c.OpenAIAPIKey == "" && c.AnthropicAPIKey == "" && c.GeminiAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY or ANTHROPIC_API_KEY or GEMINI_API_KEY")
	}
	if c.GmailAddress == "" {
		missing = append(missing, "GMAIL_ADDRESS")
	}
	if c.GmailPassword == "" {
		missing = append(missing, "GMAIL_PASSWORD")
	}
	if c.RecipientEmail == "" {
		missing = append(missing, "RECIPIENT_EMAIL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.MaxArticles < 1 {
		return fmt.Errorf("MAX_ARTICLES must be at least 1, got %d", c.MaxArticles)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
