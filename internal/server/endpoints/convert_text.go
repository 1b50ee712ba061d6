package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metroplan/railnotes/internal/api"
	"github.com/metroplan/railnotes/internal/convert"
	"github.com/metroplan/railnotes/internal/schema"
	"github.com/metroplan/railnotes/internal/svcctx"
)

// ConvertTextEndpoint converts raw text sent in a JSON body.
type ConvertTextEndpoint struct{}

// ConvertTextRequest is the request body for POST /convert-text.
type ConvertTextRequest struct {
	Text *string `json:"text"`
}

// ConvertResponse is the response body for successful conversions.
type ConvertResponse struct {
	Success  bool          `json:"success"`
	Data     schema.Record `json:"data"`
	Filename string        `json:"filename,omitempty"`
}

func (e *ConvertTextEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodPost, "/convert-text", e.handle
}

func (e *ConvertTextEndpoint) RequiresInit() bool { return true }

// handle godoc
// @Summary Convert raw text
// @Description Converts unstructured train operational text into the structured record.
// @Tags convert
// @Accept json
// @Produce json
// @Param request body ConvertTextRequest true "Raw operational text"
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /convert-text [post]
func (e *ConvertTextEndpoint) handle(w http.ResponseWriter, r *http.Request) {
	var req ConvertTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Text == nil {
		writeError(w, http.StatusBadRequest, "Missing 'text' field in request body")
		return
	}
	if strings.TrimSpace(*req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text content is empty")
		return
	}

	record, err := svcctx.ConverterFrom(r.Context()).Convert(r.Context(), *req.Text)
	if err != nil {
		writeConvertError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{Success: true, Data: record})
}

// writeConvertError maps conversion failures onto HTTP status codes.
// Inputs the model could not be coaxed into valid JSON for are client
// errors; anything else is a server fault.
func writeConvertError(w http.ResponseWriter, r *http.Request, err error) {
	if logger := svcctx.LoggerFrom(r.Context()); logger != nil {
		logger.Error("conversion failed", "error", err)
	}
	switch {
	case errors.Is(err, convert.ErrMalformedOutput), errors.Is(err, convert.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, "Conversion error: "+err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
	}
}

func (e *ConvertTextEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "convert-text <text>",
		Short: "Convert raw operational text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var result ConvertResponse
			if err := client.Post(cmd.Context(), "/convert-text", ConvertTextRequest{Text: &args[0]}, &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
}
