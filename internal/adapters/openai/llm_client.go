package openai

import (
	"context"
	"fmt"

	"github.com/mikey/email-sentiment/internal/core"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of core.SentimentModel using OpenAI chat completions
type OpenAIClient struct {
	client      *openai.Client
	modelName   string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	logger *zap.Logger,
) *OpenAIClient {
	return &OpenAIClient{
		client:      client,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// ClassifyText asks the model for a star rating of text and returns it as a "N stars" label
func (c *OpenAIClient) ClassifyText(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: core.RatingSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: core.BuildRatingPrompt(text),
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	reply := resp.Choices[0].Message.Content
	c.logger.Debug("OpenAI rating reply",
		zap.String("model", c.modelName),
		zap.String("reply", reply),
		zap.String("id", resp.ID))

	return core.NormalizeRatingReply(reply)
}
