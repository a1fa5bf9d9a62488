package solvecall

// ProviderSummary aggregates usage for a single provider.
type ProviderSummary struct {
	Calls        int     `json:"calls"`
	Successes    int     `json:"successes"`
	Failures     int     `json:"failures"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
	AvgLatencyMs int     `json:"avg_latency_ms"`
}

// Summary aggregates usage across all recorded calls.
type Summary struct {
	TotalCalls   int     `json:"total_calls"`
	Successes    int     `json:"successes"`
	Failures     int     `json:"failures"`
	SchemaValid  int     `json:"schema_valid"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
	AvgLatencyMs int     `json:"avg_latency_ms"`

	ByProvider map[string]ProviderSummary `json:"by_provider"`
}

// Summarize aggregates all calls currently in the store.
func (s *Store) Summarize() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := Summary{
		ByProvider: make(map[string]ProviderSummary),
	}

	totalLatency := 0
	latencyByProvider := make(map[string]int)

	for i := 0; i < s.count; i++ {
		c := s.calls[(s.start+i)%s.capacity]

		summary.TotalCalls++
		if c.Success {
			summary.Successes++
		} else {
			summary.Failures++
		}
		if c.SchemaValid {
			summary.SchemaValid++
		}
		summary.InputTokens += c.InputTokens
		summary.OutputTokens += c.OutputTokens
		summary.CostUSD += c.CostUSD
		totalLatency += c.LatencyMs

		p := summary.ByProvider[c.Provider]
		p.Calls++
		if c.Success {
			p.Successes++
		} else {
			p.Failures++
		}
		p.InputTokens += c.InputTokens
		p.OutputTokens += c.OutputTokens
		p.CostUSD += c.CostUSD
		latencyByProvider[c.Provider] += c.LatencyMs
		summary.ByProvider[c.Provider] = p
	}

	if summary.TotalCalls > 0 {
		summary.AvgLatencyMs = totalLatency / summary.TotalCalls
	}
	for name, p := range summary.ByProvider {
		if p.Calls > 0 {
			p.AvgLatencyMs = latencyByProvider[name] / p.Calls
		}
		summary.ByProvider[name] = p
	}

	return summary
}
