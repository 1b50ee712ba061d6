package convert

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/metroplan/railnotes/internal/schema"
)

// Normalize parses raw model text into a schema-complete record.
//
// Recovery order: strict parse of the whole text, then the text with
// markdown code fences stripped, then the first balanced object substring
// (first '{' through last '}'), then a jsonrepair pass over each of those
// candidates for outputs that are nearly-JSON (single quotes, trailing
// commas, unquoted keys). The first candidate that decodes to a JSON object
// wins. If nothing decodes, Normalize fails with ErrMalformedOutput.
//
// Whatever object is recovered is then schema-completed: every required key
// the model omitted is back-filled with the sentinel. Completion never
// fails; structure, not content, is what this function guarantees.
func Normalize(raw string) (schema.Record, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty model output", ErrMalformedOutput)
	}

	candidates := []string{raw}
	if stripped := stripCodeFences(raw); stripped != "" && stripped != raw {
		candidates = append(candidates, stripped)
	}
	if extracted := extractObjectCandidate(raw); extracted != "" && extracted != raw {
		candidates = append(candidates, extracted)
	}

	seen := make(map[string]struct{}, len(candidates)*2)
	tryDecode := func(candidate string) (schema.Record, bool) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			return nil, false
		}
		if _, ok := seen[candidate]; ok {
			return nil, false
		}
		seen[candidate] = struct{}{}

		var obj map[string]any
		if err := json.Unmarshal([]byte(candidate), &obj); err != nil || obj == nil {
			return nil, false
		}
		return schema.Record(obj), true
	}

	// Strict pass.
	for _, candidate := range candidates {
		if rec, ok := tryDecode(candidate); ok {
			return rec.Complete(), nil
		}
	}

	// Lenient pass: repair each candidate and retry. Repairs that turn
	// prose into a bare JSON string still fail the object decode above,
	// so free text without an embedded object cannot slip through.
	for _, candidate := range candidates {
		repaired, err := jsonrepair.JSONRepair(candidate)
		if err != nil {
			continue
		}
		if rec, ok := tryDecode(repaired); ok {
			return rec.Complete(), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, truncateForError(raw))
}

// stripCodeFences removes a surrounding markdown code fence, including an
// optional language tag on the opening fence.
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop first fence line.
	lines = lines[1:]
	// Drop trailing fence if present.
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// extractObjectCandidate returns the first '{' through the last '}' of the
// text. The record is always a top-level object, so arrays are not
// considered.
func extractObjectCandidate(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}

func truncateForError(raw string) string {
	const max = 256
	if len(raw) <= max {
		return raw
	}
	return raw[:max] + "...[truncated]"
}
