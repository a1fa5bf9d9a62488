package solvecall

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stepsolve/stepsolve/internal/providers"
)

func testCall(provider string, success bool) *Call {
	return &Call{
		ID:           fmt.Sprintf("%s-%d", provider, time.Now().UnixNano()),
		Timestamp:    time.Now(),
		LatencyMs:    100,
		Provider:     provider,
		Model:        "test-model",
		InputTokens:  10,
		OutputTokens: 5,
		CostUSD:      0.001,
		Success:      success,
	}
}

func TestStore(t *testing.T) {
	t.Run("record and list", func(t *testing.T) {
		s := NewStore(10)

		s.Record(testCall("gemini", true))
		s.Record(testCall("perplexity", false))

		calls := s.List(QueryFilter{})
		if len(calls) != 2 {
			t.Fatalf("List() returned %d calls, want 2", len(calls))
		}
		// Newest first
		if calls[0].Provider != "perplexity" {
			t.Errorf("first call provider = %s, want perplexity", calls[0].Provider)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		s := NewStore(10)
		c := testCall("gemini", true)
		s.Record(c)

		got := s.Get(c.ID)
		if got == nil {
			t.Fatal("Get() = nil for recorded call")
		}
		if got.ID != c.ID {
			t.Errorf("Get() ID = %s, want %s", got.ID, c.ID)
		}
		if s.Get("missing") != nil {
			t.Error("Get() != nil for unknown ID")
		}
	})

	t.Run("filter by provider", func(t *testing.T) {
		s := NewStore(10)
		s.Record(testCall("gemini", true))
		s.Record(testCall("perplexity", true))
		s.Record(testCall("gemini", false))

		calls := s.List(QueryFilter{Provider: "gemini"})
		if len(calls) != 2 {
			t.Fatalf("List(gemini) returned %d calls, want 2", len(calls))
		}
		for _, c := range calls {
			if c.Provider != "gemini" {
				t.Errorf("call provider = %s, want gemini", c.Provider)
			}
		}
	})

	t.Run("filter by success", func(t *testing.T) {
		s := NewStore(10)
		s.Record(testCall("gemini", true))
		s.Record(testCall("gemini", false))

		success := true
		calls := s.List(QueryFilter{Success: &success})
		if len(calls) != 1 || !calls[0].Success {
			t.Errorf("List(success) = %d calls, want 1 successful", len(calls))
		}
	})

	t.Run("limit", func(t *testing.T) {
		s := NewStore(10)
		for i := 0; i < 5; i++ {
			s.Record(testCall("gemini", true))
		}

		calls := s.List(QueryFilter{Limit: 3})
		if len(calls) != 3 {
			t.Errorf("List(limit 3) returned %d calls", len(calls))
		}
	})

	t.Run("evicts oldest at capacity", func(t *testing.T) {
		s := NewStore(3)
		for i := 0; i < 5; i++ {
			c := testCall("gemini", true)
			c.ID = fmt.Sprintf("call-%d", i)
			s.Record(c)
		}

		if s.Len() != 3 {
			t.Fatalf("Len() = %d, want 3", s.Len())
		}
		if s.Get("call-0") != nil || s.Get("call-1") != nil {
			t.Error("oldest calls should be evicted")
		}
		if s.Get("call-4") == nil {
			t.Error("newest call should be retained")
		}
		calls := s.List(QueryFilter{})
		if calls[0].ID != "call-4" {
			t.Errorf("newest call = %s, want call-4", calls[0].ID)
		}
	})
}

func TestFromSolveResult(t *testing.T) {
	t.Run("from successful result", func(t *testing.T) {
		result := &providers.SolveResult{
			RawText:          `{"answer": "5"}`,
			SchemaValid:      true,
			PromptTokens:     100,
			CompletionTokens: 50,
			CostUSD:          0.002,
			ExecutionTime:    1500 * time.Millisecond,
			Provider:         "gemini",
			ModelUsed:        "gemini-2.5-flash",
			RequestID:        "req-1",
			Attempts:         2,
		}

		call := FromSolveResult("gemini", result, nil)
		if call.ID != "req-1" {
			t.Errorf("ID = %s, want req-1", call.ID)
		}
		if !call.Success {
			t.Error("Success = false for nil error")
		}
		if call.LatencyMs != 1500 {
			t.Errorf("LatencyMs = %d, want 1500", call.LatencyMs)
		}
		if call.InputTokens != 100 || call.OutputTokens != 50 {
			t.Errorf("tokens = %d/%d, want 100/50", call.InputTokens, call.OutputTokens)
		}
		if !call.SchemaValid {
			t.Error("SchemaValid = false")
		}
		if call.Attempts != 2 {
			t.Errorf("Attempts = %d, want 2", call.Attempts)
		}
	})

	t.Run("from error", func(t *testing.T) {
		call := FromSolveResult("perplexity", nil, errors.New("timeout"))
		if call.Success {
			t.Error("Success = true for error")
		}
		if call.Error != "timeout" {
			t.Errorf("Error = %s, want timeout", call.Error)
		}
		if call.Provider != "perplexity" {
			t.Errorf("Provider = %s", call.Provider)
		}
		if call.ID == "" {
			t.Error("expected generated ID")
		}
	})
}

func TestSummarize(t *testing.T) {
	s := NewStore(10)

	c1 := testCall("gemini", true)
	c1.SchemaValid = true
	c1.LatencyMs = 100
	s.Record(c1)

	c2 := testCall("gemini", false)
	c2.LatencyMs = 300
	s.Record(c2)

	c3 := testCall("perplexity", true)
	c3.SchemaValid = true
	c3.LatencyMs = 200
	s.Record(c3)

	sum := s.Summarize()

	if sum.TotalCalls != 3 {
		t.Errorf("TotalCalls = %d, want 3", sum.TotalCalls)
	}
	if sum.Successes != 2 || sum.Failures != 1 {
		t.Errorf("successes/failures = %d/%d, want 2/1", sum.Successes, sum.Failures)
	}
	if sum.SchemaValid != 2 {
		t.Errorf("SchemaValid = %d, want 2", sum.SchemaValid)
	}
	if sum.InputTokens != 30 || sum.OutputTokens != 15 {
		t.Errorf("tokens = %d/%d, want 30/15", sum.InputTokens, sum.OutputTokens)
	}
	if sum.AvgLatencyMs != 200 {
		t.Errorf("AvgLatencyMs = %d, want 200", sum.AvgLatencyMs)
	}

	g := sum.ByProvider["gemini"]
	if g.Calls != 2 || g.Successes != 1 || g.Failures != 1 {
		t.Errorf("gemini summary = %+v", g)
	}
	if g.AvgLatencyMs != 200 {
		t.Errorf("gemini AvgLatencyMs = %d, want 200", g.AvgLatencyMs)
	}

	p := sum.ByProvider["perplexity"]
	if p.Calls != 1 || p.AvgLatencyMs != 200 {
		t.Errorf("perplexity summary = %+v", p)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := NewStore(10)
	sum := s.Summarize()
	if sum.TotalCalls != 0 || sum.AvgLatencyMs != 0 {
		t.Errorf("empty summary = %+v", sum)
	}
	if len(sum.ByProvider) != 0 {
		t.Error("expected empty ByProvider map")
	}
}
