package config

// DefaultConfig returns the built-in configuration: all three solve providers
// enabled, keyed off environment variables.
func DefaultConfig() *Config {
	return &Config{
		Providers: map[string]ProviderCfg{
			"gemini": {
				Type:           "gemini",
				Model:          "gemini-2.5-flash",
				APIKey:         "${GEMINI_API_KEY}",
				RateLimit:      2.0,
				TimeoutSeconds: 90,
				MaxRetries:     3,
				Enabled:        true,
			},
			"perplexity": {
				Type:           "perplexity",
				Model:          "sonar",
				APIKey:         "${PERPLEXITY_API_KEY}",
				RateLimit:      1.0,
				TimeoutSeconds: 90,
				MaxRetries:     3,
				Enabled:        true,
			},
			"chatgpt": {
				Type:           "chatgpt",
				Model:          "gpt-4o-mini",
				APIKey:         "${OPENAI_API_KEY}",
				RateLimit:      2.0,
				TimeoutSeconds: 90,
				MaxRetries:     3,
				Enabled:        true,
			},
		},
		Defaults: Defaults{
			Provider:    "gemini",
			MaxTokens:   1500,
			Temperature: 0.2,
		},
	}
}
