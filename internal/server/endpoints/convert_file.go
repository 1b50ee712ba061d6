package endpoints

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metroplan/railnotes/internal/api"
	"github.com/metroplan/railnotes/internal/svcctx"
)

// maxUploadBytes caps uploaded note files. Operational notes are small;
// anything larger is a mistake.
const maxUploadBytes = 10 << 20

// ConvertFileEndpoint converts an uploaded .txt file.
type ConvertFileEndpoint struct{}

func (e *ConvertFileEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodPost, "/convert", e.handle
}

func (e *ConvertFileEndpoint) RequiresInit() bool { return true }

// handle godoc
// @Summary Convert an uploaded file
// @Description Converts an uploaded .txt file of train operational notes into the structured record.
// @Tags convert
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Plain text notes file (.txt)"
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /convert [post]
func (e *ConvertFileEndpoint) handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing 'file' field in form data")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".txt") {
		writeError(w, http.StatusBadRequest, "Only .txt files are supported")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	if strings.TrimSpace(string(content)) == "" {
		writeError(w, http.StatusBadRequest, "File is empty")
		return
	}

	record, err := svcctx.ConverterFrom(r.Context()).Convert(r.Context(), string(content))
	if err != nil {
		writeConvertError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Success:  true,
		Data:     record,
		Filename: header.Filename,
	})
}

func (e *ConvertFileEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <file.txt>",
		Short: "Convert a notes file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var result ConvertResponse
			if err := client.PostFile(cmd.Context(), "/convert", "file", args[0], &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
}
