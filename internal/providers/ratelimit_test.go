package providers

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows burst up to capacity", func(t *testing.T) {
		rl := NewRateLimiter(5)

		if !rl.TryConsume() {
			t.Error("first TryConsume() = false, want true")
		}
	})

	t.Run("denies when exhausted", func(t *testing.T) {
		rl := NewRateLimiter(0.001) // Refills far too slowly to matter

		if !rl.TryConsume() {
			t.Fatal("first TryConsume() should succeed")
		}
		if rl.TryConsume() {
			t.Error("TryConsume() = true with empty bucket")
		}
	})

	t.Run("wait returns quickly with tokens available", func(t *testing.T) {
		rl := NewRateLimiter(100)

		start := time.Now()
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Errorf("Wait() took %v with tokens available", elapsed)
		}
	})

	t.Run("wait blocks until refill", func(t *testing.T) {
		rl := NewRateLimiter(50) // 20ms per token

		for rl.TryConsume() {
			// Drain the burst capacity
		}

		start := time.Now()
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
			t.Errorf("Wait() returned after %v, expected a rate-limit delay", elapsed)
		}
	})

	t.Run("wait respects context cancellation", func(t *testing.T) {
		rl := NewRateLimiter(0.001)
		rl.TryConsume() // Drain the bucket

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		if err := rl.Wait(ctx); err == nil {
			t.Error("Wait() = nil, want context error")
		}
	})
}
