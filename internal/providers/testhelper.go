package providers

import (
	"os"
)

// TestConfig holds provider API keys loaded from environment variables.
// This allows integration tests to use the same configuration pattern as
// production.
type TestConfig struct {
	GeminiAPIKey     string
	PerplexityAPIKey string
	OpenAIAPIKey     string
}

// LoadTestConfig loads provider API keys from environment variables.
// Returns a TestConfig with whatever keys are available.
func LoadTestConfig() TestConfig {
	return TestConfig{
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		PerplexityAPIKey: os.Getenv("PERPLEXITY_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
	}
}

// HasGemini returns true if a Gemini API key is configured.
func (c TestConfig) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

// HasPerplexity returns true if a Perplexity API key is configured.
func (c TestConfig) HasPerplexity() bool {
	return c.PerplexityAPIKey != ""
}

// HasOpenAI returns true if an OpenAI API key is configured.
func (c TestConfig) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

// ToRegistryConfig converts test config to a RegistryConfig for the
// provider registry. Only includes providers that have API keys configured.
func (c TestConfig) ToRegistryConfig() RegistryConfig {
	cfg := RegistryConfig{
		Providers: make(map[string]ProviderConfig),
	}

	if c.HasGemini() {
		cfg.Providers["gemini"] = ProviderConfig{
			Type:      "gemini",
			APIKey:    c.GeminiAPIKey,
			RateLimit: 2,
			Enabled:   true,
		}
	}
	if c.HasPerplexity() {
		cfg.Providers["perplexity"] = ProviderConfig{
			Type:      "perplexity",
			APIKey:    c.PerplexityAPIKey,
			RateLimit: 1,
			Enabled:   true,
		}
	}
	if c.HasOpenAI() {
		cfg.Providers["chatgpt"] = ProviderConfig{
			Type:      "chatgpt",
			APIKey:    c.OpenAIAPIKey,
			RateLimit: 2,
			Enabled:   true,
		}
	}

	return cfg
}
