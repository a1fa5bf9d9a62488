package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/stepsolve/stepsolve/internal/api"
	"github.com/stepsolve/stepsolve/version"
)

// RootResponse identifies the service.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// RootEndpoint handles GET /.
type RootEndpoint struct{}

var _ api.Endpoint = (*RootEndpoint)(nil)

func (e *RootEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/{$}", e.handler
}

func (e *RootEndpoint) RequiresInit() bool { return false }

func (e *RootEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Message: "stepsolve backend is running",
		Version: version.Version,
	})
}

func (e *RootEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}
