package config

import (
	"time"

	"github.com/metroplan/railnotes/internal/convert"
	"github.com/metroplan/railnotes/internal/providers"
)

// DefaultConfig returns the built-in configuration. Every value can be
// overridden by the config file or RAILNOTES_ environment variables.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8000",
		},
		Provider: providers.HuggingFaceName,
		LLMClients: map[string]LLMClientConfig{
			providers.HuggingFaceName: {
				Type:    providers.HuggingFaceName,
				Model:   "google/gemma-2-2b-it",
				APIKey:  "${HUGGINGFACE_API_KEY}",
				Timeout: 120 * time.Second,
				Enabled: true,
			},
			providers.OpenAIName: {
				Type:    providers.OpenAIName,
				Model:   "gpt-4o-mini",
				APIKey:  "${OPENAI_API_KEY}",
				Timeout: 120 * time.Second,
				Enabled: false,
			},
		},
		Convert: ConvertConfig{
			MaxRetries:  convert.DefaultMaxRetries,
			RetryDelay:  convert.DefaultRetryDelay,
			Temperature: 0.2,
			MaxTokens:   2048,
		},
	}
}
