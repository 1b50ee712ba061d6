package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/metroplan/railnotes/internal/api"
	"github.com/metroplan/railnotes/internal/svcctx"
	"github.com/metroplan/railnotes/version"
)

// HealthEndpoint reports service health.
type HealthEndpoint struct{}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status    string   `json:"status"`
	Version   string   `json:"version"`
	Providers []string `json:"providers"`
}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodGet, "/health", e.handle
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// handle godoc
// @Summary Health check
// @Description Returns service status and the configured model providers.
// @Tags info
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (e *HealthEndpoint) handle(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: version.GitRelease,
	}
	if reg := svcctx.RegistryFrom(r.Context()); reg != nil {
		resp.Providers = reg.ListLLM()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var result HealthResponse
			if err := client.Get(cmd.Context(), "/health", &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
}
