package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"subtrans/internal/llm"
	"subtrans/internal/translator"
)

// Config holds all application configuration
// Supports environment variables with sensible defaults
//
// Environment Variables:
// LLM Configuration:
// - LLM_API_URL: Chat completion endpoint base URL (default: http://localhost:1234/v1)
// - LLM_API_KEY: API key, sent as a Bearer token when set (optional)
// - LLM_MODEL: Model name to use (default: local-model)
// - LLM_MAX_TOKENS: Maximum tokens for responses (default: 8000)
// - LLM_TEMPERATURE: Temperature for responses (default: 0.3)
// - LLM_TIMEOUT: Request timeout in seconds (default: 30)
//
// Translate Configuration:
// - TARGET_LANG: BCP 47 tag of the translation target (default: ja)
// - CHUNK_SIZE: Serialized chunk budget in bytes (default: 1000)
// - CONTEXT_WINDOW: Context entries collected on each side (default: 5)
// - MAX_CONCURRENT: Concurrent endpoint calls per run (default: 3)
// - RATE_LIMIT_DELAY: Seconds a call slot is held after each call (default: 1)
//
// Watch Configuration:
// - WATCH_DIRS: Comma separated directories scanned for new subtitles
// - CRON_EXPR: Scan schedule (default: */30 * * * *)
//
// Server Configuration:
// - HTTP_ADDR: Listen address for the HTTP API (default: :8080)

type Config struct {
	LLM LLMConfig `json:"llm"`

	Translate TranslateConfig `json:"translate"`

	Watch WatchConfig `json:"watch"`

	Server ServerConfig `json:"server"`
}

// LLMConfig holds the configuration for the LLM client
// Works with any OpenAI-compatible provider (LM Studio, Ollama, OpenRouter, etc.)
type LLMConfig struct {
	APIURL      string  `json:"api_url"`
	APIKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Timeout     int     `json:"timeout"`
}

// TranslateConfig holds the pipeline tuning knobs
type TranslateConfig struct {
	TargetLanguage language.Tag `json:"target_language"`
	ChunkSize      int          `json:"chunk_size"`
	ContextWindow  int          `json:"context_window"`
	MaxConcurrent  int          `json:"max_concurrent"`
	RateLimitDelay int          `json:"rate_limit_delay"`
}

// WatchConfig holds the configuration for the directory watch service
type WatchConfig struct {
	Dirs     []string `json:"dirs"`
	CronExpr string   `json:"cron_expr"`
}

// ServerConfig holds the HTTP API configuration
type ServerConfig struct {
	Addr string `json:"addr"`
}

// Option is a function type for configuring Config
type Option func(*Config)

// NewFromEnv creates a new Config instance with values from environment variables and options
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		LLM: LLMConfig{
			APIURL:      getEnvString("LLM_API_URL", "http://localhost:1234/v1"),
			APIKey:      getEnvString("LLM_API_KEY", ""),
			Model:       getEnvString("LLM_MODEL", "local-model"),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 8000),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.3),
			Timeout:     getEnvInt("LLM_TIMEOUT", 30),
		},
		Translate: TranslateConfig{
			TargetLanguage: getEnvLanguage("TARGET_LANG", language.Japanese),
			ChunkSize:      getEnvInt("CHUNK_SIZE", translator.DefaultChunkBudget),
			ContextWindow:  getEnvInt("CONTEXT_WINDOW", translator.DefaultContextWindow),
			MaxConcurrent:  getEnvInt("MAX_CONCURRENT", translator.DefaultMaxConcurrent),
			RateLimitDelay: getEnvInt("RATE_LIMIT_DELAY", 1),
		},
		Watch: WatchConfig{
			Dirs:     getEnvList("WATCH_DIRS"),
			CronExpr: getEnvString("CRON_EXPR", "*/30 * * * *"),
		},
		Server: ServerConfig{
			Addr: getEnvString("HTTP_ADDR", ":8080"),
		},
	}

	// Apply custom options
	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	llmConfig := c.LLMConfig()
	return llmConfig.Validate()
}

// LLMConfig converts the env view into the client's own config type.
func (c *Config) LLMConfig() llm.Config {
	return llm.Config{
		APIURL:      c.LLM.APIURL,
		APIKey:      c.LLM.APIKey,
		Model:       c.LLM.Model,
		MaxTokens:   c.LLM.MaxTokens,
		Temperature: c.LLM.Temperature,
		Timeout:     c.LLM.Timeout,
	}
}

// TranslatorOptions converts the env view into pipeline options.
func (c *Config) TranslatorOptions() translator.Options {
	return translator.Options{
		TargetLanguage: LanguageName(c.Translate.TargetLanguage),
		ChunkBudget:    c.Translate.ChunkSize,
		ContextWindow:  c.Translate.ContextWindow,
		MaxConcurrent:  c.Translate.MaxConcurrent,
		RateLimitDelay: time.Duration(c.Translate.RateLimitDelay) * time.Second,
		CallTimeout:    time.Duration(c.LLM.Timeout) * time.Second,
	}
}

// LanguageName renders a tag as the English language name used in
// prompts, e.g. language.Japanese -> "Japanese".
func LanguageName(tag language.Tag) string {
	name := display.English.Languages().Name(tag)
	if name == "" {
		return tag.String()
	}
	return name
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets a float value from environment variables with default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvLanguage parses a BCP 47 tag from environment variables with default
func getEnvLanguage(key string, defaultValue language.Tag) language.Tag {
	if value := os.Getenv(key); value != "" {
		if tag, err := language.Parse(value); err == nil {
			return tag
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated environment variable, dropping
// empty elements
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
