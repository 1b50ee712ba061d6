package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/metroplan/railnotes/internal/api"
)

// HomeEndpoint describes the service at the root path.
type HomeEndpoint struct{}

// HomeResponse is the response body for GET /.
type HomeResponse struct {
	Message     string            `json:"message"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

func (e *HomeEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodGet, "/{$}", e.handle
}

func (e *HomeEndpoint) RequiresInit() bool { return false }

// handle godoc
// @Summary Service information
// @Description Returns a short description of the service and its endpoints.
// @Tags info
// @Produce json
// @Success 200 {object} HomeResponse
// @Router / [get]
func (e *HomeEndpoint) handle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HomeResponse{
		Message:     "Train Data Converter API",
		Description: "Converts unstructured train operational text into structured JSON",
		Endpoints: map[string]string{
			"POST /convert":      "Upload a .txt file and receive structured JSON",
			"POST /convert-text": "Send raw text and receive structured JSON",
			"GET /health":        "Service health",
		},
	})
}

func (e *HomeEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show service information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var result HomeResponse
			if err := client.Get(cmd.Context(), "/", &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
}
