package providers

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	ChatGPTName  = "chatgpt"
	ChatGPTModel = "gpt-4o-mini"

	// gpt-4o-mini pricing, USD per 1M tokens.
	chatgptInputCostPer1M  = 0.15
	chatgptOutputCostPer1M = 0.60
)

// ChatGPTConfig holds configuration for the ChatGPT client.
type ChatGPTConfig struct {
	APIKey      string
	BaseURL     string // Override for testing
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	RateLimit   float64       // Requests per second (default: 2.0)
	MaxRetries  int           // Retry attempts (default: 3)
	RetryDelay  time.Duration // Base delay between retries (default: 2s)
}

// ChatGPTClient implements SolveProvider using the OpenAI chat completions API.
type ChatGPTClient struct {
	client      openai.Client
	apiKey      string
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	rateLimit   float64
	maxRetries  int
	retryDelay  time.Duration
	limiter     *RateLimiter
}

// NewChatGPTClient creates a new ChatGPT client.
func NewChatGPTClient(cfg ChatGPTConfig) *ChatGPTClient {
	if cfg.Model == "" {
		cfg.Model = ChatGPTModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1500
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.2
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 90 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 2.0
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		option.WithMaxRetries(0), // retries are handled here, not in the SDK
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &ChatGPTClient{
		client:      openai.NewClient(opts...),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		rateLimit:   cfg.RateLimit,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
		limiter:     NewRateLimiter(cfg.RateLimit),
	}
}

// Name returns the provider identifier.
func (c *ChatGPTClient) Name() string {
	return ChatGPTName
}

// Model returns the configured model.
func (c *ChatGPTClient) Model() string {
	return c.model
}

// RequestsPerSecond returns the rate limit.
func (c *ChatGPTClient) RequestsPerSecond() float64 {
	return c.rateLimit
}

// MaxRetries returns the maximum retry attempts.
func (c *ChatGPTClient) MaxRetries() int {
	return c.maxRetries
}

// RetryDelayBase returns the base delay for exponential backoff.
func (c *ChatGPTClient) RetryDelayBase() time.Duration {
	return c.retryDelay
}

// SolveImage sends a problem photo to the chat completions API as a
// base64 data URL image part.
func (c *ChatGPTClient) SolveImage(ctx context.Context, image []byte, mime string) (*SolveResult, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(image))

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(solvePrompt),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				{
					OfImageURL: &openai.ChatCompletionContentPartImageParam{
						ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
							URL: dataURL,
						},
					},
				},
			}),
		},
		MaxTokens:   openai.Int(int64(c.maxTokens)),
		Temperature: openai.Float(float64(c.temperature)),
	}

	var resp *openai.ChatCompletion
	attempts := 0
	err := withRetry(ctx, c.maxRetries, c.retryDelay, func() error {
		attempts++
		var err error
		resp, err = c.client.Chat.Completions.New(ctx, params)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("chatgpt solve failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chatgpt solve: no choices in response")
	}
	raw := resp.Choices[0].Message.Content
	if raw == "" {
		return nil, fmt.Errorf("chatgpt solve: empty response")
	}

	res := &SolveResult{
		RawText:          raw,
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		CostUSD: float64(resp.Usage.PromptTokens)/1e6*chatgptInputCostPer1M +
			float64(resp.Usage.CompletionTokens)/1e6*chatgptOutputCostPer1M,
		ExecutionTime: time.Since(start),
		Provider:      ChatGPTName,
		ModelUsed:     c.model,
		RequestID:     uuid.New().String(),
		Attempts:      attempts,
	}
	return finishResult(res), nil
}

// Verify interface
var _ SolveProvider = (*ChatGPTClient)(nil)
