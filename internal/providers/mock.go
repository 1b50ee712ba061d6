package providers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is an LLMClient for testing.
type MockClient struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool     // Fail every request
	FailFirst    int      // Fail the first N requests, then succeed
	Err          error    // Error to return on failure (defaults to a transient one)
	ResponseText string   // Response when Responses is empty
	Responses    []string // Scripted responses, consumed in order; last repeats

	// State
	requestCount atomic.Int64
}

// NewMockClient creates a new mock client with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		Latency:      time.Millisecond,
		ResponseText: `{}`,
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Chat sends a mock chat request.
func (c *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()
	count := c.requestCount.Add(1)

	if c.ShouldFail || int(count) <= c.FailFirst {
		if c.Err != nil {
			return nil, c.Err
		}
		return nil, Transient(fmt.Errorf("mock client failure on request %d", count))
	}

	// Simulate latency
	select {
	case <-time.After(c.Latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	content := c.ResponseText
	if len(c.Responses) > 0 {
		idx := int(count) - 1 - c.FailFirst
		if idx >= len(c.Responses) {
			idx = len(c.Responses) - 1
		}
		if idx < 0 {
			idx = 0
		}
		content = c.Responses[idx]
	}

	return &ChatResult{
		Content:       content,
		ExecutionTime: time.Since(start),
		Provider:      MockClientName,
		ModelUsed:     req.Model,
		RequestID:     fmt.Sprintf("mock-%d", count),
	}, nil
}

// RequestCount returns the number of requests made.
func (c *MockClient) RequestCount() int64 {
	return c.requestCount.Load()
}

// Reset resets the request counter.
func (c *MockClient) Reset() {
	c.requestCount.Store(0)
}

// Verify interface
var _ LLMClient = (*MockClient)(nil)
