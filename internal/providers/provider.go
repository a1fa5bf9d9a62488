// Package providers implements the LLM clients that turn a math-problem
// photo into a free-form solution payload. Each provider takes an image and
// returns the model's raw text plus a best-effort JSON parse of it; the
// normalize package is responsible for making sense of the payload.
package providers

import (
	"context"
	"time"

	"github.com/stepsolve/stepsolve/internal/normalize"
)

// SolveProvider is the interface all solve backends implement.
type SolveProvider interface {
	// Name returns the provider identifier (e.g. "gemini").
	Name() string

	// Model returns the model the provider is configured to use.
	Model() string

	// SolveImage sends a problem photo to the model and returns its response.
	SolveImage(ctx context.Context, image []byte, mime string) (*SolveResult, error)

	// Rate limiting properties
	RequestsPerSecond() float64
	MaxRetries() int
	RetryDelayBase() time.Duration
}

// SolveResult is the complete response from a provider call.
type SolveResult struct {
	// RawText is the model's response text, verbatim.
	RawText string `json:"raw"`

	// Parsed is the best-effort JSON value mined from RawText, nil when
	// nothing parseable was found.
	Parsed any `json:"parsed"`

	// SchemaValid reports whether Parsed conforms to the solution schema.
	// Informational only; the normalizer copes either way.
	SchemaValid bool `json:"schema_valid"`

	// Token usage (zero when the provider does not report it)
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`

	// Cost and timing
	CostUSD       float64       `json:"cost_usd,omitempty"`
	ExecutionTime time.Duration `json:"execution_time,omitempty"`

	// Provider info
	Provider  string `json:"provider"`
	ModelUsed string `json:"model_used"`

	// Request tracking
	RequestID string `json:"request_id,omitempty"`
	Attempts  int    `json:"attempts,omitempty"`
}

// finishResult fills the derived fields of a SolveResult from the raw text:
// the mined JSON value and its schema-validity flag.
func finishResult(res *SolveResult) *SolveResult {
	if v, ok := normalize.ExtractJSON(res.RawText); ok {
		res.Parsed = v
		res.SchemaValid = ValidateSolution(v) == nil
	}
	return res
}
