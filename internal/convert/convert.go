// Package convert runs the prompt → model → normalize pipeline that turns
// raw operational notes into schema-complete records.
package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	promptconvert "github.com/metroplan/railnotes/internal/prompts/convert"
	"github.com/metroplan/railnotes/internal/providers"
	"github.com/metroplan/railnotes/internal/schema"
)

const (
	// DefaultMaxRetries is the number of retries after the first attempt,
	// so the default budget is three attempts total.
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the fixed pause between attempts.
	DefaultRetryDelay = time.Second

	defaultTemperature = 0.2
	defaultMaxTokens   = 2048
)

// Config holds the conversion pipeline configuration. Retry policy is
// explicit here rather than buried in the transport: the whole
// build→invoke→normalize chain is what gets retried.
type Config struct {
	Client      providers.LLMClient
	Model       string // Uses the client default if empty
	MaxRetries  int    // Retries after the first attempt (default 2)
	RetryDelay  time.Duration
	Temperature float64
	MaxTokens   int
	Logger      *slog.Logger
}

// Converter orchestrates the conversion pipeline. It holds no per-request
// state; concurrent Convert calls are independent.
type Converter struct {
	client      providers.LLMClient
	model       string
	maxRetries  int
	retryDelay  time.Duration
	temperature float64
	maxTokens   int
	logger      *slog.Logger

	responseFormat *providers.ResponseFormat
}

// New creates a Converter.
func New(cfg Config) (*Converter, error) {
	if cfg.Client == nil {
		return nil, errors.New("convert: client is required")
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	} else if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	rfDoc, err := json.Marshal(schema.ResponseFormat["json_schema"])
	if err != nil {
		return nil, fmt.Errorf("convert: failed to serialize response format: %w", err)
	}

	return &Converter{
		client:      cfg.Client,
		model:       cfg.Model,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      cfg.Logger,
		responseFormat: &providers.ResponseFormat{
			Type:       "json_schema",
			JSONSchema: rfDoc,
		},
	}, nil
}

// Convert runs the full pipeline on rawText and returns a schema-complete
// record. Transient invocation failures and malformed model output are
// retried with a fixed delay up to the configured budget; the last failure
// propagates once the budget is exhausted. The prompt is identical on every
// attempt; the model may simply sample differently.
func (c *Converter) Convert(ctx context.Context, rawText string) (schema.Record, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyInput
	}

	requestID := uuid.New().String()
	messages := []providers.Message{
		{Role: "system", Content: promptconvert.SystemPrompt()},
		{Role: "user", Content: promptconvert.UserPrompt(rawText)},
	}

	attempt := 0
	record, err := retry.DoWithData(
		func() (schema.Record, error) {
			attempt++
			result, err := c.client.Chat(ctx, &providers.ChatRequest{
				Messages:       messages,
				Model:          c.model,
				Temperature:    c.temperature,
				MaxTokens:      c.maxTokens,
				ResponseFormat: c.responseFormat,
				RequestID:      requestID,
			})
			if err != nil {
				return nil, err
			}
			return Normalize(result.Content)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries+1)),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, ErrMalformedOutput) || providers.IsTransient(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("conversion attempt failed",
				"attempt", n+1,
				"request_id", requestID,
				"provider", c.client.Name(),
				"error", err,
			)
		}),
	)
	if err != nil {
		c.logger.Error("conversion failed",
			"attempts", attempt,
			"request_id", requestID,
			"provider", c.client.Name(),
			"error", err,
		)
		return nil, err
	}

	// Completion already guarantees the required keys; this is a final
	// structural check against the record schema.
	if err := schema.Validate(record); err != nil {
		return nil, err
	}

	c.logger.Info("conversion succeeded",
		"attempts", attempt,
		"request_id", requestID,
		"provider", c.client.Name(),
	)
	return record, nil
}
