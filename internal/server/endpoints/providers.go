package endpoints

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/spf13/cobra"

	"github.com/stepsolve/stepsolve/internal/api"
	"github.com/stepsolve/stepsolve/internal/svcctx"
)

// ProviderInfo describes a registered solve provider.
type ProviderInfo struct {
	Name      string  `json:"name"`
	Model     string  `json:"model"`
	RateLimit float64 `json:"rate_limit"`
}

// ProvidersResponse lists registered providers.
type ProvidersResponse struct {
	Providers []ProviderInfo `json:"providers"`
}

// ListProvidersEndpoint handles GET /api/providers.
type ListProvidersEndpoint struct{}

var _ api.Endpoint = (*ListProvidersEndpoint)(nil)

func (e *ListProvidersEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/providers", e.handler
}

func (e *ListProvidersEndpoint) RequiresInit() bool { return false }

func (e *ListProvidersEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := ProvidersResponse{Providers: []ProviderInfo{}}

	registry := svcctx.RegistryFrom(r.Context())
	if registry != nil {
		for name, p := range registry.Providers() {
			resp.Providers = append(resp.Providers, ProviderInfo{
				Name:      name,
				Model:     p.Model(),
				RateLimit: p.RequestsPerSecond(),
			})
		}
	}
	sort.Slice(resp.Providers, func(i, j int) bool {
		return resp.Providers[i].Name < resp.Providers[j].Name
	})

	writeJSON(w, http.StatusOK, resp)
}

func (e *ListProvidersEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered solve providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ProvidersResponse
			if err := client.Get("/api/providers", &resp); err != nil {
				return err
			}
			for _, p := range resp.Providers {
				fmt.Printf("%-12s %s (%.1f rps)\n", p.Name, p.Model, p.RateLimit)
			}
			return nil
		},
	}
}
