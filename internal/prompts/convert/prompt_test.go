package convert

import (
	"strings"
	"testing"

	"github.com/metroplan/railnotes/internal/schema"
)

func TestUserPrompt_EmbedsRawTextVerbatim(t *testing.T) {
	raw := "train KMRC-012 daily clean at 11 pm, team A.\nbranding election awareness priority 1."
	prompt := UserPrompt(raw)

	if !strings.Contains(prompt, raw) {
		t.Fatal("user prompt must embed the raw text verbatim")
	}
}

func TestUserPrompt_EmbedsSchemaAndSentinel(t *testing.T) {
	prompt := UserPrompt("some notes")

	if !strings.Contains(prompt, schema.Description) {
		t.Error("user prompt must embed the schema description")
	}
	if !strings.Contains(prompt, schema.NotSpecified) {
		t.Errorf("user prompt must prescribe the %q sentinel", schema.NotSpecified)
	}
	for _, key := range schema.RequiredKeys {
		if !strings.Contains(prompt, key) {
			t.Errorf("user prompt missing required key %q", key)
		}
	}
}

func TestSystemPrompt_DemandsJSONOnly(t *testing.T) {
	sys := SystemPrompt()
	if !strings.Contains(strings.ToLower(sys), "only valid json") {
		t.Error("system prompt should instruct JSON-only output")
	}
}
