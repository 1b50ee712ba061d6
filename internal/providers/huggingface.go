package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	HuggingFaceName    = "huggingface"
	HuggingFaceBaseURL = "https://api-inference.huggingface.co"

	huggingFaceDefaultModel = "google/gemma-2-2b-it"
)

// HuggingFaceConfig holds configuration for the Hugging Face serverless
// inference client.
type HuggingFaceConfig struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
	Timeout      time.Duration
}

// HuggingFaceClient implements LLMClient against the Hugging Face serverless
// inference API (text-generation task). It performs exactly one invocation
// per Chat call and classifies failures as transient or terminal; retries
// happen above it.
type HuggingFaceClient struct {
	apiKey       string
	baseURL      string
	defaultModel string
	client       *http.Client
}

// NewHuggingFaceClient creates a new Hugging Face inference client.
func NewHuggingFaceClient(cfg HuggingFaceConfig) *HuggingFaceClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = HuggingFaceBaseURL
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = huggingFaceDefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	return &HuggingFaceClient{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		defaultModel: cfg.DefaultModel,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name returns the client identifier.
func (c *HuggingFaceClient) Name() string {
	return HuggingFaceName
}

// hfRequest is the text-generation task payload.
type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	Temperature    float64 `json:"temperature,omitempty"`
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfOptions struct {
	// WaitForModel blocks while a cold serverless model loads instead of
	// returning 503 immediately.
	WaitForModel bool `json:"wait_for_model"`
}

// Chat sends a single text-generation request.
func (c *HuggingFaceClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	// The serverless text-generation task takes a single input string, so
	// the chat messages are flattened in order.
	var prompt strings.Builder
	for i, m := range req.Messages {
		if i > 0 {
			prompt.WriteString("\n\n")
		}
		prompt.WriteString(m.Content)
	}

	hfReq := hfRequest{
		Inputs: prompt.String(),
		Parameters: hfParameters{
			Temperature:    req.Temperature,
			MaxNewTokens:   req.MaxTokens,
			ReturnFullText: false,
		},
		Options: hfOptions{WaitForModel: true},
	}

	body, err := json.Marshal(hfReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/models/" + model
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, Transient(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Transient(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := fmt.Errorf("huggingface error (status %d): %s", resp.StatusCode, string(respBody))
		if retryableStatus(resp.StatusCode) {
			return nil, Transient(apiErr)
		}
		return nil, apiErr
	}

	content, err := extractGeneratedText(respBody)
	if err != nil {
		return nil, err
	}

	return &ChatResult{
		Content:       content,
		ExecutionTime: time.Since(start),
		Provider:      HuggingFaceName,
		ModelUsed:     model,
		RequestID:     requestID,
	}, nil
}

// extractGeneratedText pulls the textual payload out of the inference
// response. The API returns either an array of generation objects, a single
// object, or a bare JSON string depending on the task and backend.
func extractGeneratedText(body []byte) (string, error) {
	type generation struct {
		GeneratedText string `json:"generated_text"`
	}

	var list []generation
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return list[0].GeneratedText, nil
	}

	var single generation
	if err := json.Unmarshal(body, &single); err == nil && single.GeneratedText != "" {
		return single.GeneratedText, nil
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil && plain != "" {
		return plain, nil
	}

	return "", fmt.Errorf("unrecognized huggingface response shape: %s", truncateForError(body))
}

func truncateForError(body []byte) string {
	const max = 512
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "...[truncated]"
}

// Verify interface
var _ LLMClient = (*HuggingFaceClient)(nil)
