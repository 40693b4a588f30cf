package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	groqBaseURL   = "https://api.groq.com/openai/v1"
	groqMaxTokens = 4096
)

// GroqClient calls the Groq chat-completions API, which speaks the
// OpenAI wire format.
type GroqClient struct {
	model  openai.ChatModel
	client *openai.Client
}

// NewGroqClient builds a client against api.groq.com.
func NewGroqClient(apiKey, model string) (*GroqClient, error) {
	return newGroqClient(apiKey, model, groqBaseURL)
}

func newGroqClient(apiKey, model, baseURL string) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = "llama3-70b-8192"
	}
	// The SDK's built-in retries are disabled; the shared retry policy in
	// RetryingClient applies uniformly to both providers.
	cli := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(defaultRequestTimeout),
	)
	return &GroqClient{
		model:  openai.ChatModel(model),
		client: &cli,
	}, nil
}

func (c *GroqClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil groq client")
	}
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    buildMessages(prompt),
		Temperature: openai.Float(generationTemperature),
		MaxTokens:   openai.Int(groqMaxTokens),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("groq: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(prompt string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(prompt),
				},
			},
		},
	}
}
