package llm

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	cohereBaseURL   = "https://api.cohere.ai"
	cohereMaxTokens = 400
)

// CohereClient calls the Cohere single-shot generation API.
type CohereClient struct {
	http  *resty.Client
	model string
}

type cohereGenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type cohereGenerateResponse struct {
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
}

// NewCohereClient builds a client against api.cohere.ai.
func NewCohereClient(apiKey, model string) (*CohereClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = "command-light"
	}
	httpClient := resty.New().
		SetBaseURL(cohereBaseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(defaultRequestTimeout)
	return &CohereClient{
		http:  httpClient,
		model: model,
	}, nil
}

func (c *CohereClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.http == nil {
		return "", fmt.Errorf("nil cohere client")
	}
	var out cohereGenerateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(cohereGenerateRequest{
			Model:       c.model,
			Prompt:      prompt,
			MaxTokens:   cohereMaxTokens,
			Temperature: generationTemperature,
		}).
		SetResult(&out).
		Post("/v1/generate")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("cohere: unexpected status %s", resp.Status())
	}
	if len(out.Generations) == 0 || out.Generations[0].Text == "" {
		return "", fmt.Errorf("cohere: no generations returned")
	}
	return out.Generations[0].Text, nil
}
