// Package schema defines the fixed output record for converted operational
// notes and the JSON Schema the model's output is validated against.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// NotSpecified is the sentinel value written into any required field the
// model did not produce.
const NotSpecified = "Not specified"

// RequiredKeys lists the seven required record fields in canonical order.
var RequiredKeys = []string{
	"date",
	"branding_priorities",
	"cleaning_slots",
	"stabling_geometry",
	"fitness_certificates",
	"job_card_status",
	"mileage",
}

// Record is a converted operational-notes record. Required keys are always
// present after Complete; extra model-authored keys pass through untouched.
type Record map[string]any

// Complete back-fills every missing required key with the NotSpecified
// sentinel. It never fails and is idempotent: completing an already-complete
// record changes nothing.
func (r Record) Complete() Record {
	if r == nil {
		r = make(Record, len(RequiredKeys))
	}
	for _, key := range RequiredKeys {
		if _, ok := r[key]; !ok {
			r[key] = NotSpecified
		}
	}
	return r
}

// IsComplete reports whether every required key is present.
func (r Record) IsComplete() bool {
	for _, key := range RequiredKeys {
		if _, ok := r[key]; !ok {
			return false
		}
	}
	return true
}

// Description is the schema description embedded verbatim into the
// conversion prompt.
const Description = `Top-level JSON object with these keys (ALL REQUIRED):
- date: The date mentioned or current date
- branding_priorities: Branding or awareness priorities and campaigns
- cleaning_slots: Scheduled cleaning times and teams
- stabling_geometry: Train identifiers and stabling information
- fitness_certificates: Fitness and certificate validity information
- job_card_status: Status of job cards and maintenance work
- mileage: Mileage information if available

IMPORTANT: Every field above MUST be included in the output JSON, even if the value is "Not specified".`

// ResponseFormat is the structured-output wrapper sent to providers that
// support json_schema response formats.
var ResponseFormat = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "operational_record",
		"strict": false,
		"schema": promptSchema(),
	},
}

// promptSchema is the schema advertised to the model. Fields are typed as
// strings because the record values are free text.
func promptSchema() map[string]any {
	props := make(map[string]any, len(RequiredKeys))
	for _, key := range RequiredKeys {
		props[key] = map[string]any{"type": "string"}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             RequiredKeys,
		"additionalProperties": true,
	}
}

// validationSchema is the schema records are checked against locally. It
// enforces structure (object shape, required keys) only; values stay
// model-authored and are not type-checked, mirroring the pass-through
// guarantee for extra keys.
func validationSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": RequiredKeys,
	}
}

// Validate checks a completed record against the core JSON Schema. Used as a
// final structural check after completion; values remain model-authored free
// text and are not validated semantically.
func Validate(r Record) error {
	schemaDoc, err := json.Marshal(validationSchema())
	if err != nil {
		return fmt.Errorf("failed to serialize record schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(schemaDoc)); err != nil {
		return fmt.Errorf("failed to load record schema: %w", err)
	}
	compiled, err := compiler.Compile("record.json")
	if err != nil {
		return fmt.Errorf("failed to compile record schema: %w", err)
	}

	// Round-trip through encoding/json so the validator sees plain
	// map[string]any values.
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode record for validation: %w", err)
	}

	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
