package providers

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &httpStatusError{status: 429}, true},
		{"server error", &httpStatusError{status: 500}, true},
		{"bad gateway", &httpStatusError{status: 502}, true},
		{"unauthorized", &httpStatusError{status: 401}, false},
		{"bad request", &httpStatusError{status: 400}, false},
		{"not found", &httpStatusError{status: 404}, false},
		{"network error", errors.New("connection reset"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransient(tt.err); got != tt.want {
				t.Errorf("isTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithRetry(t *testing.T) {
	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), 3, time.Millisecond, func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("withRetry() error = %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("retries transient then succeeds", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return &httpStatusError{status: 503}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("withRetry() error = %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), 3, time.Millisecond, func() error {
			calls++
			return &httpStatusError{status: 401}
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), 3, time.Millisecond, func() error {
			calls++
			return &httpStatusError{status: 500}
		})
		if err == nil {
			t.Fatal("expected error after exhausting retries")
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("context cancellation aborts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := withRetry(ctx, 10, 50*time.Millisecond, func() error {
			calls++
			cancel()
			return &httpStatusError{status: 500}
		})
		if err == nil {
			t.Fatal("expected error after cancellation")
		}
		if calls > 2 {
			t.Errorf("calls = %d, expected early abort", calls)
		}
	})
}
