package providers

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// LLMClientConfig describes one configured client.
type LLMClientConfig struct {
	Type    string // "huggingface", "openai", "mock"
	Model   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Enabled bool
}

// RegistryConfig is the provider section of the service configuration.
type RegistryConfig struct {
	LLMClients map[string]LLMClientConfig
}

// Registry holds references to LLM clients. It supports config-driven
// instantiation, hot-reload, and thread-safe access.
type Registry struct {
	mu         sync.RWMutex
	llmClients map[string]LLMClient
	logger     *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		llmClients: make(map[string]LLMClient),
		logger:     slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// RegisterLLM registers an LLM client by name.
func (r *Registry) RegisterLLM(name string, client LLMClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.llmClients[name] = client
	if r.logger != nil {
		r.logger.Info("registered LLM client", "name", name)
	}
}

// GetLLM returns an LLM client by name.
func (r *Registry) GetLLM(name string) (LLMClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.llmClients[name]
	if !ok {
		return nil, fmt.Errorf("LLM client not found: %s", name)
	}
	return client, nil
}

// ListLLM returns all registered LLM client names, sorted.
func (r *Registry) ListLLM() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.llmClients))
	for name := range r.llmClients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasLLM checks if an LLM client is registered.
func (r *Registry) HasLLM(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.llmClients[name]
	return ok
}

// Reload replaces the registered clients from configuration. Clients absent
// from the new config are dropped; in-flight requests hold their own client
// reference so they are unaffected.
func (r *Registry) Reload(cfg RegistryConfig) {
	clients := make(map[string]LLMClient, len(cfg.LLMClients))
	for name, cc := range cfg.LLMClients {
		if !cc.Enabled {
			continue
		}
		client, err := buildLLMClient(cc)
		if err != nil {
			r.mu.RLock()
			logger := r.logger
			r.mu.RUnlock()
			if logger != nil {
				logger.Error("failed to build LLM client", "name", name, "error", err)
			}
			continue
		}
		clients[name] = client
	}

	r.mu.Lock()
	r.llmClients = clients
	logger := r.logger
	r.mu.Unlock()

	if logger != nil {
		logger.Info("provider registry reloaded", "clients", len(clients))
	}
}

func buildLLMClient(cc LLMClientConfig) (LLMClient, error) {
	switch cc.Type {
	case HuggingFaceName:
		return NewHuggingFaceClient(HuggingFaceConfig{
			APIKey:       cc.APIKey,
			BaseURL:      cc.BaseURL,
			DefaultModel: cc.Model,
			Timeout:      cc.Timeout,
		}), nil
	case OpenAIName:
		return NewOpenAIClient(OpenAIConfig{
			APIKey:       cc.APIKey,
			BaseURL:      cc.BaseURL,
			DefaultModel: cc.Model,
			Timeout:      cc.Timeout,
		}), nil
	case MockClientName:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown LLM client type: %s", cc.Type)
	}
}
