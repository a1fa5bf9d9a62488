package main

import (
	"github.com/spf13/cobra"

	"github.com/stepsolve/stepsolve/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running stepsolve server via HTTP.

These commands require a running server (stepsolve serve).
Use --server to specify a custom server URL.

Examples:
  stepsolve api health                          # Check server health
  stepsolve api solve -p gemini problem.png     # Solve a problem photo
  stepsolve api calls -p gemini                 # Recent calls for a provider
  stepsolve api metrics                         # Aggregated usage`,
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	// Health endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ReadyEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StatusEndpoint{}).Command(getServerURL))

	// Solve and introspection
	apiCmd.AddCommand((&endpoints.SolveEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ListProvidersEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ListCallsEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.MetricsSummaryEndpoint{}).Command(getServerURL))

	rootCmd.AddCommand(apiCmd)
}
