package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
)

// httpStatusError marks an HTTP failure so the retry policy can distinguish
// transient statuses (429, 5xx) from permanent ones.
type httpStatusError struct {
	status int
	body   string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.status, e.body)
}

// isTransient reports whether an error is worth retrying.
func isTransient(err error) bool {
	if se, ok := err.(*httpStatusError); ok {
		return se.status == 429 || se.status >= 500
	}
	// Network-level failures (connection reset, timeout) are retryable.
	return true
}

// withRetry runs fn with exponential backoff, retrying transient failures up
// to attempts times. Context cancellation aborts immediately.
func withRetry(ctx context.Context, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(baseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
	)
}
