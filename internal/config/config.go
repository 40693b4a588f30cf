package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Supported LLM_PROVIDER values.
const (
	ProviderGroq   = "groq"
	ProviderCohere = "cohere"
)

// Config holds runtime configuration. Loaded once at startup and never mutated.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// LLM provider selection, fixed for the process lifetime.
	LLMProvider  string `env:"LLM_PROVIDER" envDefault:"groq"` // "groq" or "cohere"
	GroqAPIKey   string `env:"GROQ_API_KEY"`
	GroqModel    string `env:"GROQ_MODEL" envDefault:"llama3-70b-8192"`
	CohereAPIKey string `env:"COHERE_API_KEY"`
	CohereModel  string `env:"COHERE_MODEL" envDefault:"command-light"`

	// Telegram
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`

	// History store
	DBURL string `env:"DB_URL"`

	// Queue
	QueueURL string `env:"QUEUE_URL"`

	// Session state
	SessionProvider string `env:"SESSION_PROVIDER" envDefault:"redis"` // "redis" or "memory"
	RedisAddr       string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	SessionTTL      int    `env:"SESSION_TTL" envDefault:"3600"` // seconds a chat's document is kept
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
