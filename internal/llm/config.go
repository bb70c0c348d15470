package llm

import (
	"fmt"
	"strings"
)

// Config holds the configuration for the LLM endpoint client.
// Works against any chat-completion compatible server (LM Studio,
// OpenAI, OpenRouter, llama.cpp server, etc.). The API key is optional
// because local servers usually run without authentication.
type Config struct {
	APIURL      string  `json:"api_url"`
	APIKey      string  `json:"api_key,omitempty"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Timeout     int     `json:"timeout"` // seconds, per request
}

// Validate checks the configuration before a client is built from it.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("API URL is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max tokens must be greater than 0")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.Timeout < 1 {
		return fmt.Errorf("timeout must be greater than 0")
	}
	return nil
}

// BaseURL returns the API URL without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.APIURL, "/")
}

// Headers returns the headers sent with every endpoint request.
func (c *Config) Headers() map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if c.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.APIKey
	}
	return headers
}
