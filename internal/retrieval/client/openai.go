package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	retrievalerrors "stayquest/internal/retrieval/errors"
	"stayquest/pkg/config"
	"stayquest/pkg/metrics"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const serviceName = "openai"

// OpenAIClient embeds text and answers prompts. Calls share one client-side
// rate limit.
type OpenAIClient struct {
	api            *openai.Client
	embeddingModel openai.EmbeddingModel
	chatModel      string
	limiter        *rate.Limiter
}

func NewOpenAIClient(cfg *config.Config) *OpenAIClient {
	apiCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		apiCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return &OpenAIClient{
		api:            openai.NewClientWithConfig(apiCfg),
		embeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		chatModel:      cfg.ChatModel,
		limiter:        rate.NewLimiter(rate.Limit(cfg.EmbeddingRPS), max(1, int(cfg.EmbeddingRPS))),
	}
}

func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch returns one vector per input, in input order.
func (c *OpenAIClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embedding rate limit: %w", err)
	}

	start := time.Now()
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: c.embeddingModel,
	})
	metrics.ObserveExternal(serviceName, "embeddings", statusOf(err), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d for %d inputs", retrievalerrors.ErrEmptyEmbedding, len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) || len(d.Embedding) == 0 {
			return nil, retrievalerrors.ErrEmptyEmbedding
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// Complete sends prompt as a single user message and returns the reply text.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("chat rate limit: %w", err)
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	metrics.ObserveExternal(serviceName, "chat_completions", statusOf(err), time.Since(start))
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", retrievalerrors.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func statusOf(err error) int {
	if err == nil {
		return 200
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
