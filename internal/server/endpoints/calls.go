package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stepsolve/stepsolve/internal/api"
	"github.com/stepsolve/stepsolve/internal/solvecall"
	"github.com/stepsolve/stepsolve/internal/svcctx"
)

// CallsResponse lists recorded solve calls.
type CallsResponse struct {
	Calls []solvecall.Call `json:"calls"`
}

// ListCallsEndpoint handles GET /api/calls.
// Supports provider, success, and limit query parameters.
type ListCallsEndpoint struct{}

var _ api.Endpoint = (*ListCallsEndpoint)(nil)

func (e *ListCallsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/calls", e.handler
}

func (e *ListCallsEndpoint) RequiresInit() bool { return true }

func (e *ListCallsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.CallStoreFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "call store not initialized")
		return
	}

	filter := solvecall.QueryFilter{
		Provider: r.URL.Query().Get("provider"),
	}
	if v := r.URL.Query().Get("success"); v != "" {
		success, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid success parameter")
			return
		}
		filter.Success = &success
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		filter.Limit = limit
	}

	writeJSON(w, http.StatusOK, CallsResponse{Calls: store.List(filter)})
}

func (e *ListCallsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var provider string
	var limit int
	cmd := &cobra.Command{
		Use:   "calls",
		Short: "List recorded solve calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := fmt.Sprintf("/api/calls?limit=%d", limit)
			if provider != "" {
				path += "&provider=" + provider
			}
			var resp CallsResponse
			if err := client.Get(path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Filter by provider")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of calls")
	return cmd
}

// MetricsSummaryEndpoint handles GET /api/metrics/summary.
type MetricsSummaryEndpoint struct{}

var _ api.Endpoint = (*MetricsSummaryEndpoint)(nil)

func (e *MetricsSummaryEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/metrics/summary", e.handler
}

func (e *MetricsSummaryEndpoint) RequiresInit() bool { return true }

func (e *MetricsSummaryEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.CallStoreFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "call store not initialized")
		return
	}

	writeJSON(w, http.StatusOK, store.Summarize())
}

func (e *MetricsSummaryEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show aggregated solve metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp solvecall.Summary
			if err := client.Get("/api/metrics/summary", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
