package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"pdf-tutor/internal/config"
	"pdf-tutor/internal/gateway"
	"pdf-tutor/internal/llm"
	"pdf-tutor/internal/logger"
	"pdf-tutor/internal/queue"
	"pdf-tutor/internal/session"
	"pdf-tutor/internal/store"
	"pdf-tutor/internal/telegram"
)

// Deps bundles common runtime dependencies for services.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Gateway  *gateway.Gateway
	Queue    queue.Queue
	Session  session.Store
	Store    store.Store
	Telegram telegram.Messenger
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "err", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	q, err := buildQueue(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}
	sess, err := buildSession(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize session store: %w", err)
	}
	st, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize history store: %w", err)
	}
	tg, err := telegram.NewClient(cfg.TelegramBotToken)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize Telegram client: %w", err)
	}

	return Deps{
		Config:   cfg,
		Log:      log,
		Gateway:  gateway.New(llmClient, log),
		Queue:    q,
		Session:  sess,
		Store:    st,
		Telegram: tg,
	}, nil
}

// buildLLM selects the provider once at startup; the choice is held as an
// invariant for the process lifetime. Every provider is wrapped with the
// same retry policy.
func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderGroq:
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required when LLM_PROVIDER=groq")
		}
		client, err := llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Groq client: %w", err)
		}
		log.Info("using Groq provider", "model", cfg.GroqModel)
		return llm.NewRetrying(client), nil
	case config.ProviderCohere:
		if cfg.CohereAPIKey == "" {
			return nil, fmt.Errorf("COHERE_API_KEY is required when LLM_PROVIDER=cohere")
		}
		client, err := llm.NewCohereClient(cfg.CohereAPIKey, cfg.CohereModel)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Cohere client: %w", err)
		}
		log.Info("using Cohere provider", "model", cfg.CohereModel)
		return llm.NewRetrying(client), nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: groq, cohere)", cfg.LLMProvider)
	}
}

func buildQueue(cfg config.Config, log *slog.Logger) (queue.Queue, error) {
	if cfg.QueueURL == "" {
		return nil, fmt.Errorf("QUEUE_URL is required")
	}
	nc, err := nats.Connect(cfg.QueueURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info("using NATS queue")
	return queue.NewNATS(log, nc), nil
}

func buildSession(cfg config.Config, log *slog.Logger) (session.Store, error) {
	ttl := time.Duration(cfg.SessionTTL) * time.Second
	switch cfg.SessionProvider {
	case "redis":
		st, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("using Redis session store", "ttl", ttl)
		return st, nil
	case "memory":
		log.Info("using in-memory session store", "ttl", ttl)
		return session.NewMemoryStore(ttl), nil
	default:
		return nil, fmt.Errorf("invalid SESSION_PROVIDER: %s (valid options: redis, memory)", cfg.SessionProvider)
	}
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}
	db, err := store.NewPostgres(cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
	}
	log.Info("using Postgres history store")
	return db, nil
}
