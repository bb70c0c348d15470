package llm

// Message represents a single chat message.
//
// Role is "system", "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the chat completion request body, compatible with the
// OpenAI API format that LM Studio and friends speak.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// ChatResponse is the chat completion response body.
type ChatResponse struct {
	ID      string    `json:"id"`
	Object  string    `json:"object"`
	Created int64     `json:"created"`
	Model   string    `json:"model"`
	Choices []Choice  `json:"choices"`
	Usage   Usage     `json:"usage"`
	Error   *APIError `json:"error,omitempty"`
}

// Choice is one completion alternative. Only index 0 is consumed.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage carries token accounting reported by the endpoint.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// APIError is the error object some endpoints embed in the body.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// ModelInfo describes one model exposed by the endpoint.
type ModelInfo struct {
	ID string `json:"id"`
}

// modelsResponse is the body of GET /models.
type modelsResponse struct {
	Data []ModelInfo `json:"data"`
}

// CompletionOptions overrides request parameters for a single call.
type CompletionOptions struct {
	SystemPrompt string
	MaxTokens    int     // <= 0 means use the configured default
	Temperature  float64 // < 0 means use the configured default
}
