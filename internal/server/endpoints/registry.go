package endpoints

import (
	"github.com/stepsolve/stepsolve/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Service identity and health
		&RootEndpoint{},
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},

		// Solve endpoints
		&SolveEndpoint{},
		&LegacySolveEndpoint{Provider: "gemini"},
		&LegacySolveEndpoint{Provider: "perplexity"},
		&LegacySolveEndpoint{Provider: "chatgpt"},

		// Introspection
		&ListProvidersEndpoint{},
		&ListCallsEndpoint{},
		&MetricsSummaryEndpoint{},
	}
}
