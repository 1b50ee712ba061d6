// Package endpoints contains the HTTP endpoints served by railnotes.
// Each endpoint implements api.Endpoint, pairing the HTTP route with the
// CLI command that calls it.
package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/metroplan/railnotes/internal/api"
)

// All returns every endpoint the server registers.
func All() []api.Endpoint {
	return []api.Endpoint{
		&HomeEndpoint{},
		&HealthEndpoint{},
		&ConvertFileEndpoint{},
		&ConvertTextEndpoint{},
		&SwaggerEndpoint{},
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
