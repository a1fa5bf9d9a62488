package endpoints

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/stepsolve/stepsolve/internal/api"
	"github.com/stepsolve/stepsolve/internal/normalize"
	"github.com/stepsolve/stepsolve/internal/solvecall"
	"github.com/stepsolve/stepsolve/internal/svcctx"
)

// maxUploadMemory bounds multipart form parsing for photo uploads.
const maxUploadMemory = 20 << 20 // 20MB

// SolveResponse is the response for solve endpoints. Raw and Parsed expose
// what the provider returned; Result is the normalized solution.
type SolveResponse struct {
	Raw      string                   `json:"raw"`
	Parsed   any                      `json:"parsed"`
	Result   normalize.SolutionResult `json:"result"`
	Provider string                   `json:"provider"`
	Model    string                   `json:"model"`
}

// SolveEndpoint handles POST /api/solve/{provider} with a multipart photo
// upload.
type SolveEndpoint struct{}

var _ api.Endpoint = (*SolveEndpoint)(nil)

func (e *SolveEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/solve/{provider}", e.handler
}

func (e *SolveEndpoint) RequiresInit() bool { return true }

func (e *SolveEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	solveWith(w, r, r.PathValue("provider"))
}

func (e *SolveEndpoint) Command(getServerURL func() string) *cobra.Command {
	var provider string
	cmd := &cobra.Command{
		Use:   "solve [image-file]",
		Short: "Solve a problem from a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp SolveResponse
			path := fmt.Sprintf("/api/solve/%s", provider)
			if err := client.PostFile(path, "file", args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVarP(&provider, "provider", "p", "gemini", "Provider to solve with")
	return cmd
}

// LegacySolveEndpoint serves the old provider-specific upload paths
// (POST /solve-gemini, /solve-perplexity, /solve-chatgpt).
type LegacySolveEndpoint struct {
	Provider string
}

func (e *LegacySolveEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/solve-" + e.Provider, e.handler
}

func (e *LegacySolveEndpoint) RequiresInit() bool { return true }

func (e *LegacySolveEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	solveWith(w, r, e.Provider)
}

func (e *LegacySolveEndpoint) Command(_ func() string) *cobra.Command {
	// The generic solve command covers these paths.
	return nil
}

// solveWith reads the uploaded photo, dispatches it to the named provider,
// records the call, and writes the normalized solution.
func solveWith(w http.ResponseWriter, r *http.Request, providerName string) {
	if providerName == "" {
		writeError(w, http.StatusBadRequest, "provider is required")
		return
	}

	registry := svcctx.RegistryFrom(r.Context())
	if registry == nil {
		writeError(w, http.StatusServiceUnavailable, "provider registry not initialized")
		return
	}

	provider, err := registry.Get(providerName)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown provider: %s", providerName))
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read upload: %v", err))
		return
	}
	if len(image) == 0 {
		writeError(w, http.StatusBadRequest, "uploaded file is empty")
		return
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(image)
	}

	logger := svcctx.LoggerFrom(r.Context())
	store := svcctx.CallStoreFrom(r.Context())

	result, err := provider.SolveImage(r.Context(), image, mime)
	if store != nil {
		store.Record(solvecall.FromSolveResult(providerName, result, err))
	}
	if err != nil {
		if logger != nil {
			logger.Error("solve failed", "provider", providerName, "error", err)
		}
		writeError(w, http.StatusBadGateway, fmt.Sprintf("solve failed: %v", err))
		return
	}

	if logger != nil {
		logger.Info("solved image",
			"provider", providerName,
			"model", result.ModelUsed,
			"schema_valid", result.SchemaValid,
			"latency_ms", result.ExecutionTime.Milliseconds())
	}

	writeJSON(w, http.StatusOK, SolveResponse{
		Raw:      result.RawText,
		Parsed:   result.Parsed,
		Result:   normalize.Normalize(result.Parsed, result.RawText),
		Provider: provider.Name(),
		Model:    result.ModelUsed,
	})
}
