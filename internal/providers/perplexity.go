package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	PerplexityName    = "perplexity"
	PerplexityBaseURL = "https://api.perplexity.ai"
	PerplexityModel   = "sonar"

	// Perplexity sonar pricing: $1/1M input + $1/1M output tokens.
	perplexityCostPer1M = 1.0
)

// PerplexityConfig holds configuration for the Perplexity client.
type PerplexityConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
	RateLimit  float64       // Requests per second (default: 1.0)
	MaxRetries int           // Retry attempts (default: 3)
	RetryDelay time.Duration // Base delay between retries (default: 2s)
}

// PerplexityClient implements SolveProvider using the Perplexity chat
// completions API with an image attachment.
type PerplexityClient struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	rateLimit  float64
	maxRetries int
	retryDelay time.Duration
	limiter    *RateLimiter
	client     *http.Client
}

// NewPerplexityClient creates a new Perplexity client.
func NewPerplexityClient(cfg PerplexityConfig) *PerplexityClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = PerplexityBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = PerplexityModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1500
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 90 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 1.0
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	return &PerplexityClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		rateLimit:  cfg.RateLimit,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		limiter:    NewRateLimiter(cfg.RateLimit),
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name returns the provider identifier.
func (c *PerplexityClient) Name() string {
	return PerplexityName
}

// Model returns the configured model.
func (c *PerplexityClient) Model() string {
	return c.model
}

// RequestsPerSecond returns the rate limit.
func (c *PerplexityClient) RequestsPerSecond() float64 {
	return c.rateLimit
}

// MaxRetries returns the maximum retry attempts.
func (c *PerplexityClient) MaxRetries() int {
	return c.maxRetries
}

// RetryDelayBase returns the base delay for exponential backoff.
func (c *PerplexityClient) RetryDelayBase() time.Duration {
	return c.retryDelay
}

// SolveImage sends a problem photo through the chat completions endpoint.
func (c *PerplexityClient) SolveImage(ctx context.Context, image []byte, mime string) (*SolveResult, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqBody := perplexityRequest{
		Model: c.model,
		Messages: []perplexityMessage{
			{Role: "user", Content: solvePrompt},
		},
		Attachments: []perplexityAttachment{
			{
				Type:     "image",
				MimeType: mime,
				Data:     base64.StdEncoding.EncodeToString(image),
				Filename: "problem",
			},
		},
		MaxTokens: c.maxTokens,
	}

	var resp *perplexityResponse
	attempts := 0
	err := withRetry(ctx, c.maxRetries, c.retryDelay, func() error {
		attempts++
		var err error
		resp, err = c.doRequest(ctx, "/chat/completions", reqBody)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("perplexity solve failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("perplexity solve: no choices in response")
	}

	res := &SolveResult{
		RawText:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		CostUSD:          float64(resp.Usage.PromptTokens+resp.Usage.CompletionTokens) / 1e6 * perplexityCostPer1M,
		ExecutionTime:    time.Since(start),
		Provider:         PerplexityName,
		ModelUsed:        resp.Model,
		RequestID:        uuid.New().String(),
		Attempts:         attempts,
	}
	if res.ModelUsed == "" {
		res.ModelUsed = c.model
	}
	return finishResult(res), nil
}

// doRequest makes an HTTP request to the Perplexity API.
func (c *PerplexityClient) doRequest(ctx context.Context, path string, body any) (*perplexityResponse, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &httpStatusError{status: resp.StatusCode, body: string(respBody)}
	}

	var pResp perplexityResponse
	if err := json.Unmarshal(respBody, &pResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &pResp, nil
}

// Perplexity API types

type perplexityRequest struct {
	Model       string                 `json:"model"`
	Messages    []perplexityMessage    `json:"messages"`
	Attachments []perplexityAttachment `json:"attachments,omitempty"`
	MaxTokens   int                    `json:"max_tokens,omitempty"`
}

type perplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityAttachment struct {
	Type     string `json:"type"`
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
	Filename string `json:"filename,omitempty"`
}

type perplexityResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Verify interface
var _ SolveProvider = (*PerplexityClient)(nil)
