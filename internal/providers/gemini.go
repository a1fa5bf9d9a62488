package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const (
	GeminiName  = "gemini"
	GeminiModel = "gemini-2.5-flash"

	// Gemini flash pricing, USD per 1M tokens.
	geminiInputCostPer1M  = 0.30
	geminiOutputCostPer1M = 2.50
)

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	RateLimit   float64       // Requests per second (default: 2.0)
	MaxRetries  int           // Retry attempts (default: 3)
	RetryDelay  time.Duration // Base delay between retries (default: 2s)
}

// GeminiClient implements SolveProvider using the Google generative AI SDK.
type GeminiClient struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	rateLimit   float64
	maxRetries  int
	retryDelay  time.Duration
	limiter     *RateLimiter

	// clientOpts lets tests point the SDK at a fake endpoint.
	clientOpts []option.ClientOption
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = GeminiModel
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

	return &GeminiClient{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		rateLimit:   cfg.RateLimit,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
		limiter:     NewRateLimiter(cfg.RateLimit),
		clientOpts:  []option.ClientOption{option.WithAPIKey(cfg.APIKey)},
	}
}

// Name returns the provider identifier.
func (c *GeminiClient) Name() string {
	return GeminiName
}

// Model returns the configured model.
func (c *GeminiClient) Model() string {
	return c.model
}

// RequestsPerSecond returns the rate limit.
func (c *GeminiClient) RequestsPerSecond() float64 {
	return c.rateLimit
}

// MaxRetries returns the maximum retry attempts.
func (c *GeminiClient) MaxRetries() int {
	return c.maxRetries
}

// RetryDelayBase returns the base delay for exponential backoff.
func (c *GeminiClient) RetryDelayBase() time.Duration {
	return c.retryDelay
}

// SolveImage sends a problem photo to Gemini.
func (c *GeminiClient) SolveImage(ctx context.Context, image []byte, mime string) (*SolveResult, error) {
	start := time.Now()

	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini solve: API key is empty")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cl, err := genai.NewClient(ctx, c.clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("gemini solve: failed to create client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(c.temperature),
		MaxOutputTokens:  ptrInt32(int32(c.maxTokens)),
		ResponseMIMEType: "application/json",
	}

	parts := []genai.Part{
		genai.Text(solvePrompt),
		&genai.Blob{MIMEType: mime, Data: image},
	}

	var resp *genai.GenerateContentResponse
	attempts := 0
	err = withRetry(ctx, c.maxRetries, c.retryDelay, func() error {
		attempts++
		var err error
		resp, err = m.GenerateContent(ctx, parts...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("gemini solve failed: %w", err)
	}

	raw := firstText(resp)
	if raw == "" {
		return nil, fmt.Errorf("gemini solve: empty response")
	}

	res := &SolveResult{
		RawText:       raw,
		ExecutionTime: time.Since(start),
		Provider:      GeminiName,
		ModelUsed:     c.model,
		RequestID:     uuid.New().String(),
		Attempts:      attempts,
	}
	if um := resp.UsageMetadata; um != nil {
		res.PromptTokens = int(um.PromptTokenCount)
		res.CompletionTokens = int(um.CandidatesTokenCount)
		res.CostUSD = float64(um.PromptTokenCount)/1e6*geminiInputCostPer1M +
			float64(um.CandidatesTokenCount)/1e6*geminiOutputCostPer1M
	}
	return finishResult(res), nil
}

// firstText returns the first text part of the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }

// Verify interface
var _ SolveProvider = (*GeminiClient)(nil)
