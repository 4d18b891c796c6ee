package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/sentinelops/logsage/internal/config"
)

const systemMessage = "You are logsage, an expert cybersecurity analyst specializing in log analysis and threat detection."

// OpenAI talks to any OpenAI-compatible completions endpoint (OpenAI
// itself, or Ollama's /v1 surface).
type OpenAI struct {
	client *openai.Client
	cfg    *config.LLMConfig
}

func NewOpenAI(cfg *config.LLMConfig) (*OpenAI, error) {
	opts := []option.RequestOption{
		option.WithBaseURL(cfg.Endpoint),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		cfg:    cfg,
	}, nil
}

func (o *OpenAI) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	options := &Options{
		Model:       o.cfg.Model,
		Temperature: o.cfg.Temperature,
		MaxTokens:   2000,
	}
	for _, opt := range opts {
		opt(options)
	}

	slog.Debug("invoking completion service", "model", options.Model, "prompt_chars", len(prompt))

	resp, err := o.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Model: openai.F(options.Model),
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemMessage),
				openai.UserMessage(prompt),
			}),
			Temperature: openai.F(options.Temperature),
			MaxTokens:   openai.F(options.MaxTokens),
		},
	)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion service returned no choices")
	}

	content := resp.Choices[0].Message.Content
	slog.Debug("completion received", "response_chars", len(content))
	return content, nil
}
