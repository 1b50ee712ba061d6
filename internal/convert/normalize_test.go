package convert

import (
	"errors"
	"testing"

	"github.com/metroplan/railnotes/internal/schema"
)

func TestNormalize_StrictJSON(t *testing.T) {
	rec, err := Normalize(`{"date":"2024-01-01","mileage":"12,400 km"}`)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if rec["date"] != "2024-01-01" {
		t.Errorf("date = %v", rec["date"])
	}
	if rec["mileage"] != "12,400 km" {
		t.Errorf("mileage = %v", rec["mileage"])
	}
	if !rec.IsComplete() {
		t.Error("normalized record must be schema-complete")
	}
}

func TestNormalize_CompletesMissingKeys(t *testing.T) {
	rec, err := Normalize(`{"cleaning_slots":"KMRC-012, 11pm, team A"}`)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	for _, key := range schema.RequiredKeys {
		if key == "cleaning_slots" {
			continue
		}
		if rec[key] != schema.NotSpecified {
			t.Errorf("rec[%q] = %v, want sentinel", key, rec[key])
		}
	}
}

func TestNormalize_FencedJSONInProse(t *testing.T) {
	raw := "Here is your JSON:\n```json\n{\"date\":\"2024-01-01\"}\n```"
	rec, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if rec["date"] != "2024-01-01" {
		t.Errorf("date = %v, want extracted value", rec["date"])
	}
	if !rec.IsComplete() {
		t.Error("record must be completed after lenient recovery")
	}
}

func TestNormalize_BareCodeFence(t *testing.T) {
	raw := "```json\n{\"job_card_status\":\"open\"}\n```"
	rec, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if rec["job_card_status"] != "open" {
		t.Errorf("job_card_status = %v", rec["job_card_status"])
	}
}

func TestNormalize_RepairsNearJSON(t *testing.T) {
	// Single quotes and a trailing comma: invalid JSON that jsonrepair
	// can fix.
	raw := "{'date': '2024-01-01', 'mileage': '9000 km',}"
	rec, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if rec["date"] != "2024-01-01" {
		t.Errorf("date = %v", rec["date"])
	}
}

func TestNormalize_UnrecoverableText(t *testing.T) {
	_, err := Normalize("I cannot process this request.")
	if err == nil {
		t.Fatal("Normalize() should fail on JSON-free text")
	}
	if !errors.Is(err, ErrMalformedOutput) {
		t.Errorf("error = %v, want ErrMalformedOutput", err)
	}
}

func TestNormalize_EmptyOutput(t *testing.T) {
	_, err := Normalize("   \n ")
	if !errors.Is(err, ErrMalformedOutput) {
		t.Errorf("error = %v, want ErrMalformedOutput", err)
	}
}

func TestNormalize_ArrayWrappedObject(t *testing.T) {
	// A top-level array is not a record, but the embedded object is
	// recoverable via balanced-object extraction.
	rec, err := Normalize(`[{"date":"2024-01-01"}]`)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if rec["date"] != "2024-01-01" {
		t.Errorf("date = %v, want object recovered from array wrapper", rec["date"])
	}
}

func TestNormalize_PreservesExtraKeys(t *testing.T) {
	rec, err := Normalize(`{"date":"2024-01-01","remarks":"checked twice"}`)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if rec["remarks"] != "checked twice" {
		t.Errorf("extra keys must pass through, got %v", rec["remarks"])
	}
}

func TestExtractObjectCandidate(t *testing.T) {
	if got := extractObjectCandidate("no braces here"); got != "" {
		t.Errorf("extractObjectCandidate() = %q, want empty", got)
	}
	if got := extractObjectCandidate(`prefix {"a":1} suffix`); got != `{"a":1}` {
		t.Errorf("extractObjectCandidate() = %q", got)
	}
}
