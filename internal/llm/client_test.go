package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) *Config {
	return &Config{
		APIURL:      url,
		APIKey:      "test-key",
		Model:       "test-model",
		MaxTokens:   500,
		Temperature: 0.3,
		Timeout:     30,
	}
}

func completionBody(content string) string {
	response := ChatResponse{
		ID:    "resp-1",
		Model: "test-model",
		Choices: []Choice{
			{Message: Message{Role: "assistant", Content: content}, FinishReason: "stop"},
		},
	}
	data, _ := json.Marshal(response)
	return string(data)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(testConfig("https://api.example.com/v1"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1", client.baseURL)
	assert.Equal(t, 30*time.Second, client.Timeout())
	assert.Equal(t, "test-model", client.Model())

	_, err = NewClient(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestConfigValidate(t *testing.T) {
	// API key is optional for local servers
	config := testConfig("http://localhost:1234/v1")
	config.APIKey = ""
	assert.NoError(t, config.Validate())

	config.Temperature = 3
	assert.Error(t, config.Validate())
}

func TestComplete(t *testing.T) {
	var gotRequest ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("  translated text  ")))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	content, err := client.Complete(context.Background(), "translate me", &CompletionOptions{
		SystemPrompt: "you are a translator",
		Temperature:  0.3,
	})
	require.NoError(t, err)
	assert.Equal(t, "translated text", content)

	require.Len(t, gotRequest.Messages, 2)
	assert.Equal(t, "system", gotRequest.Messages[0].Role)
	assert.Equal(t, "user", gotRequest.Messages[1].Role)
	assert.Equal(t, "test-model", gotRequest.Model)
	assert.Equal(t, 500, gotRequest.MaxTokens)
}

func TestCompleteProtocolFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "hello", nil)
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindProtocol, kind)
	assert.Contains(t, err.Error(), "503")
}

func TestCompleteTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "hello", nil)
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, kind)
}

func TestCompleteFormatFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no choices", body: `{"id":"x","choices":[]}`},
		{name: "empty content", body: completionBody("   ")},
		{name: "embedded error", body: `{"error":{"message":"bad model","type":"invalid_request_error"}}`},
		{name: "not json", body: `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewClient(testConfig(server.URL))
			require.NoError(t, err)

			_, err = client.Complete(context.Background(), "hello", nil)
			require.Error(t, err)

			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, KindFormat, kind)
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// outlast the client deadline, then return so Close can reap
		// the connection
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(completionBody("too late")))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Complete(ctx, "hello", nil)
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, kind)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":"other-model"},{"id":"test-model"}]}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	status := client.Ping(context.Background())
	assert.True(t, status.Reachable)
	assert.True(t, status.ModelAvailable)
	assert.Equal(t, []string{"other-model", "test-model"}, status.AvailableModels)
	assert.Empty(t, status.Error)
}

func TestPingUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	status := client.Ping(context.Background())
	assert.False(t, status.Reachable)
	assert.Contains(t, status.Error, "unreachable")
}
