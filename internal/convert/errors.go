package convert

import "errors"

// ErrMalformedOutput means neither strict parsing nor lenient recovery found
// a JSON object in the model's text. It is retryable: a fresh generation may
// come back well-formed.
var ErrMalformedOutput = errors.New("no valid JSON object in model output")

// ErrEmptyInput means the caller submitted blank text. It is a boundary
// precondition violation and is never retried.
var ErrEmptyInput = errors.New("input text is empty")
