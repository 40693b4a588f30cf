package llm

import (
	"context"
	"time"

	"pdf-tutor/internal/retry"
)

// Retry policy applied to every provider call, regardless of backend.
const (
	retryAttempts = 3
	retryBase     = 4 * time.Second
	retryMax      = 10 * time.Second
)

// RetryingClient wraps a Client with the shared retry policy.
type RetryingClient struct {
	inner    Client
	attempts int
	base     time.Duration
	max      time.Duration
}

// NewRetrying wraps inner with the default policy.
func NewRetrying(inner Client) *RetryingClient {
	return NewRetryingWithPolicy(inner, retryAttempts, retryBase, retryMax)
}

// NewRetryingWithPolicy wraps inner with an explicit policy.
func NewRetryingWithPolicy(inner Client, attempts int, base, max time.Duration) *RetryingClient {
	return &RetryingClient{inner: inner, attempts: attempts, base: base, max: max}
}

func (c *RetryingClient) Generate(ctx context.Context, prompt string) (string, error) {
	var text string
	err := retry.Do(ctx, c.attempts, c.base, c.max, func() error {
		out, genErr := c.inner.Generate(ctx, prompt)
		if genErr != nil {
			return genErr
		}
		text = out
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}
