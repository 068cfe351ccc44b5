package coach

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const temperature = 0.7

// OpenAICompleter completes prompts with the OpenAI chat completions API.
type OpenAICompleter struct {
	client openai.Client
	model  openai.ChatModel
	logger *slog.Logger
}

// NewOpenAICompleter creates a completer authenticated with apiKey.
func NewOpenAICompleter(apiKey string, logger *slog.Logger, opts ...option.RequestOption) *OpenAICompleter {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAICompleter{
		client: openai.NewClient(opts...),
		model:  openai.ChatModelGPT4o,
		logger: logger,
	}
}

// Complete sends prompt as a single user message and returns the text of the first choice.
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{ //nolint:exhaustruct // only need to set a few fields.
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       c.model,
		Temperature: openai.Float(temperature),
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "sending chat completion request", slog.String("model", string(c.model)))
	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "received chat completion response",
		slog.Int64("completion_tokens", completion.Usage.CompletionTokens),
		slog.Int64("prompt_tokens", completion.Usage.PromptTokens),
		slog.Int64("total_tokens", completion.Usage.TotalTokens))

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}
