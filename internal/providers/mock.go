package providers

import (
	"context"
	"sync"
	"time"
)

// MockProvider is a configurable SolveProvider for tests.
type MockProvider struct {
	mu sync.Mutex

	ProviderName string
	ModelName    string
	Result       *SolveResult
	Err          error

	// Calls records every image passed to SolveImage.
	Calls []MockCall
}

// MockCall records a single SolveImage invocation.
type MockCall struct {
	Image []byte
	MIME  string
}

// NewMockProvider creates a mock that returns the given raw text.
func NewMockProvider(name, rawText string) *MockProvider {
	return &MockProvider{
		ProviderName: name,
		ModelName:    "mock-model",
		Result: &SolveResult{
			RawText:   rawText,
			Provider:  name,
			ModelUsed: "mock-model",
		},
	}
}

func (m *MockProvider) Name() string {
	return m.ProviderName
}

func (m *MockProvider) Model() string {
	return m.ModelName
}

func (m *MockProvider) RequestsPerSecond() float64 {
	return 100
}

func (m *MockProvider) MaxRetries() int {
	return 1
}

func (m *MockProvider) RetryDelayBase() time.Duration {
	return time.Millisecond
}

func (m *MockProvider) SolveImage(ctx context.Context, image []byte, mime string) (*SolveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Image: image, MIME: mime})
	if m.Err != nil {
		return nil, m.Err
	}
	res := *m.Result
	return finishResult(&res), nil
}

var _ SolveProvider = (*MockProvider)(nil)
