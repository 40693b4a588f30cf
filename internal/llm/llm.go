package llm

import (
	"context"
	"time"
)

// Client is a minimal LLM interface to allow pluggable providers.
// Implementations own their request shaping and response extraction;
// everything above them works with plain prompt and reply strings.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	defaultRequestTimeout = 60 * time.Second

	// Both providers share the same sampling temperature.
	generationTemperature = 0.7
)
