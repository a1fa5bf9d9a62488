package providers

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry holds references to solve providers.
// It supports config-driven instantiation, hot-reload, and provides
// thread-safe access.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]SolveProvider
	logger    *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]SolveProvider),
		logger:    slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register registers a solve provider by name.
func (r *Registry) Register(name string, provider SolveProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = provider
	if r.logger != nil {
		r.logger.Info("registered provider", "name", name)
	}
}

// Unregister removes a solve provider by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.providers, name)
	if r.logger != nil {
		r.logger.Info("unregistered provider", "name", name)
	}
}

// Get returns a solve provider by name.
func (r *Registry) Get(name string) (SolveProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", name)
	}
	return provider, nil
}

// List returns all registered provider names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Has checks if a provider is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[name]
	return ok
}

// Providers returns a map of all registered solve providers.
func (r *Registry) Providers() map[string]SolveProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[string]SolveProvider, len(r.providers))
	for name, provider := range r.providers {
		result[name] = provider
	}
	return result
}

// RegistryConfig defines the providers to instantiate from config.
// This mirrors the config.Config structure for provider setup.
type RegistryConfig struct {
	// Providers maps provider names to their config
	Providers map[string]ProviderConfig

	// MaxTokens and Temperature apply to every created provider.
	MaxTokens   int
	Temperature float32
}

// ProviderConfig matches config.ProviderCfg with resolved API key.
type ProviderConfig struct {
	Type           string  // "gemini", "perplexity", "chatgpt"
	Model          string  // Model name
	APIKey         string  // Resolved API key
	RateLimit      float64 // Requests per second
	TimeoutSeconds int
	MaxRetries     int
	Enabled        bool
}

// NewRegistryFromConfig creates a registry with providers based on
// configuration. Only enabled providers with valid API keys will be
// registered.
func NewRegistryFromConfig(cfg RegistryConfig) *Registry {
	r := NewRegistry()
	r.applyConfig(cfg)
	return r
}

// Reload updates the registry based on new configuration.
// Providers that are no longer configured will be unregistered.
// Providers with changed settings will be re-registered.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[string]bool)

	for name, provCfg := range cfg.Providers {
		if !provCfg.Enabled || provCfg.APIKey == "" {
			continue
		}
		want[name] = true

		existing, hasExisting := r.providers[name]
		if !hasExisting || needsUpdate(existing, provCfg) {
			provider := createProvider(provCfg, cfg)
			if provider != nil {
				r.providers[name] = provider
				if r.logger != nil {
					if hasExisting {
						r.logger.Info("updated provider", "name", name, "type", provCfg.Type)
					} else {
						r.logger.Info("registered provider", "name", name, "type", provCfg.Type)
					}
				}
			}
		}
	}

	for name := range r.providers {
		if !want[name] {
			delete(r.providers, name)
			if r.logger != nil {
				r.logger.Info("unregistered provider", "name", name)
			}
		}
	}
}

// applyConfig applies configuration without locking (used during init).
func (r *Registry) applyConfig(cfg RegistryConfig) {
	for name, provCfg := range cfg.Providers {
		if !provCfg.Enabled || provCfg.APIKey == "" {
			continue
		}
		provider := createProvider(provCfg, cfg)
		if provider != nil {
			r.providers[name] = provider
		}
	}
}

// createProvider creates a solve provider based on provider type.
func createProvider(cfg ProviderConfig, reg RegistryConfig) SolveProvider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	switch cfg.Type {
	case "gemini":
		return NewGeminiClient(GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			MaxTokens:   reg.MaxTokens,
			Temperature: reg.Temperature,
			Timeout:     timeout,
			RateLimit:   cfg.RateLimit,
			MaxRetries:  cfg.MaxRetries,
		})
	case "perplexity":
		return NewPerplexityClient(PerplexityConfig{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			MaxTokens:  reg.MaxTokens,
			Timeout:    timeout,
			RateLimit:  cfg.RateLimit,
			MaxRetries: cfg.MaxRetries,
		})
	case "chatgpt":
		return NewChatGPTClient(ChatGPTConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			MaxTokens:   reg.MaxTokens,
			Temperature: reg.Temperature,
			Timeout:     timeout,
			RateLimit:   cfg.RateLimit,
			MaxRetries:  cfg.MaxRetries,
		})
	default:
		return nil
	}
}

// needsUpdate checks if a provider needs to be recreated.
func needsUpdate(provider SolveProvider, cfg ProviderConfig) bool {
	switch p := provider.(type) {
	case *GeminiClient:
		return p.apiKey != cfg.APIKey ||
			p.model != cfg.Model ||
			p.rateLimit != cfg.RateLimit
	case *PerplexityClient:
		return p.apiKey != cfg.APIKey ||
			p.model != cfg.Model ||
			p.rateLimit != cfg.RateLimit
	case *ChatGPTClient:
		return p.apiKey != cfg.APIKey ||
			p.model != cfg.Model ||
			p.rateLimit != cfg.RateLimit
	default:
		return true
	}
}
