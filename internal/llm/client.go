package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a chat-completion API client. Thread-safe for concurrent
// use; the translation dispatcher issues many calls against one Client.
type Client struct {
	config     *Config
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new LLM client from the given configuration.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Client{
		config:  config,
		baseURL: config.BaseURL(),
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}, nil
}

// Timeout is the per-request timeout the client was configured with.
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.config.Timeout) * time.Second
}

// Model is the configured model name.
func (c *Client) Model() string {
	return c.config.Model
}

// Complete sends one chat completion and returns the assistant's text.
// Any failure is returned as a *CallError classified as transport,
// protocol or format.
func (c *Client) Complete(ctx context.Context, prompt string, opts *CompletionOptions) (string, error) {
	if opts == nil {
		opts = &CompletionOptions{Temperature: -1}
	}

	messages := make([]Message, 0, 2)
	if opts.SystemPrompt != "" {
		messages = append(messages, Message{Role: "system", Content: opts.SystemPrompt})
	}
	messages = append(messages, Message{Role: "user", Content: prompt})

	response, err := c.ChatCompletion(ctx, messages, opts)
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", newFormatError("response contains no choices", nil)
	}

	content := strings.TrimSpace(response.Choices[0].Message.Content)
	if content == "" {
		return "", newFormatError("response content is empty", nil)
	}
	return content, nil
}

// ChatCompletion sends a raw chat completion request.
func (c *Client) ChatCompletion(ctx context.Context, messages []Message, opts *CompletionOptions) (*ChatResponse, error) {
	request := ChatRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   c.maxTokens(opts),
		Temperature: c.temperature(opts),
	}

	body, err := c.post(ctx, "/chat/completions", request)
	if err != nil {
		return nil, err
	}

	var response ChatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, newFormatError("failed to decode response body", err)
	}

	if response.Error != nil && response.Error.Message != "" {
		return nil, newFormatError(fmt.Sprintf("endpoint reported error: %s (type %s)",
			response.Error.Message, response.Error.Type), nil)
	}

	return &response, nil
}

// Status reports the endpoint's reachability.
type Status struct {
	Reachable       bool     `json:"reachable"`
	ModelAvailable  bool     `json:"model_available"`
	AvailableModels []string `json:"available_models,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// Ping checks whether the endpoint answers on its model listing route
// and whether the configured model is loaded.
func (c *Client) Ping(ctx context.Context) Status {
	status := Status{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	for key, value := range c.config.Headers() {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		status.Error = fmt.Sprintf("endpoint unreachable: %v", err)
		return status
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		status.Error = fmt.Sprintf("models endpoint returned HTTP %d", resp.StatusCode)
		return status
	}
	status.Reachable = true

	var models modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		status.Error = fmt.Sprintf("failed to decode models list: %v", err)
		return status
	}

	for _, model := range models.Data {
		status.AvailableModels = append(status.AvailableModels, model.ID)
		if model.ID == c.config.Model {
			status.ModelAvailable = true
		}
	}
	return status
}

// post issues a POST with a JSON body and returns the response body.
// Transport and protocol failures are classified here; callers handle
// body-level format failures.
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, newFormatError("failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, newTransportError("failed to create request", err)
	}
	for key, value := range c.config.Headers() {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newTransportError("request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(string(body))
		if len(detail) > 512 {
			detail = detail[:512]
		}
		return nil, newProtocolError(resp.StatusCode, detail)
	}

	return body, nil
}

func (c *Client) maxTokens(opts *CompletionOptions) int {
	if opts != nil && opts.MaxTokens > 0 {
		return opts.MaxTokens
	}
	return c.config.MaxTokens
}

func (c *Client) temperature(opts *CompletionOptions) float64 {
	if opts != nil && opts.Temperature >= 0 && opts.Temperature <= 2 {
		return opts.Temperature
	}
	return c.config.Temperature
}
