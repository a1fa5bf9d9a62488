// Package solvecall provides solve call recording and querying for
// traceability. Every provider API call is recorded with its outcome and
// usage metrics.
package solvecall

import (
	"time"

	"github.com/google/uuid"

	"github.com/stepsolve/stepsolve/internal/providers"
)

// Call represents a recorded provider API call.
type Call struct {
	// Unique identifier
	ID string `json:"id"`

	// Timing
	Timestamp time.Time `json:"timestamp"`
	LatencyMs int       `json:"latency_ms"`

	// Model info
	Provider string `json:"provider"`
	Model    string `json:"model"`

	// Token usage and cost
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`

	// Outcome
	SchemaValid bool   `json:"schema_valid"`
	Attempts    int    `json:"attempts"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// FromSolveResult creates a Call from a provider result. Exactly one of
// result and callErr is expected to be set; on error the provider name is
// taken from the argument since no result exists.
func FromSolveResult(provider string, result *providers.SolveResult, callErr error) *Call {
	call := &Call{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Provider:  provider,
		Success:   callErr == nil,
	}

	if callErr != nil {
		call.Error = callErr.Error()
		return call
	}

	if result != nil {
		if result.RequestID != "" {
			call.ID = result.RequestID
		}
		call.LatencyMs = int(result.ExecutionTime.Milliseconds())
		call.Model = result.ModelUsed
		call.InputTokens = result.PromptTokens
		call.OutputTokens = result.CompletionTokens
		call.CostUSD = result.CostUSD
		call.SchemaValid = result.SchemaValid
		call.Attempts = result.Attempts
	}

	return call
}
