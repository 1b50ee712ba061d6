// Package convert holds the prompts for structuring raw operational notes
// into the fixed record schema.
package convert

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/metroplan/railnotes/internal/schema"
)

//go:embed system.tmpl
var systemPrompt string

//go:embed user.tmpl
var userPromptTmpl string

var userTemplate = template.Must(template.New("user").Parse(userPromptTmpl))

// SystemPrompt returns the system prompt for record extraction.
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt builds the user prompt embedding the schema description and the
// raw text verbatim. The raw text is never truncated or rewritten; the model
// must see exactly what the caller submitted.
func UserPrompt(rawText string) string {
	var buf bytes.Buffer
	data := struct {
		Schema   string
		RawText  string
		Sentinel string
	}{
		Schema:   schema.Description,
		RawText:  rawText,
		Sentinel: schema.NotSpecified,
	}
	if err := userTemplate.Execute(&buf, data); err != nil {
		// Fallback to raw template on error
		return userPromptTmpl
	}
	return buf.String()
}
