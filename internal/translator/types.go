package translator

import (
	"context"
	"time"

	"subtrans/internal/llm"
	"subtrans/internal/subtitle"
)

// Completer is the slice of the LLM client the pipeline depends on.
// *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts *llm.CompletionOptions) (string, error)
}

// Context is the bounded look-back/look-ahead window supplied with a
// single entry to keep its translation coherent. Previous is ordered
// most-recent-last. Built fresh per entry, never persisted.
type Context struct {
	Previous []string
	Next     []string
	Scene    string
	Speaker  string
}

// Chunk is a contiguous run of entries whose serialized size fits the
// chunk budget, or a single oversize entry that alone exceeds it.
// Chunks partition the input without overlap, in input order.
type Chunk struct {
	Entries []subtitle.Entry
	Size    int
}

const (
	DefaultChunkBudget    = 1000
	DefaultContextWindow  = 5
	DefaultMaxConcurrent  = 3
	DefaultTargetLanguage = "Japanese"
)

// Options configures one pipeline invocation.
type Options struct {
	// TargetLanguage names the language translations are produced in.
	TargetLanguage string
	// ChunkBudget bounds the serialized size of a chunk. Zero selects
	// the default; a negative value is rejected as a structural error.
	ChunkBudget int
	// ContextWindow is the number of neighboring entries supplied as
	// context on each side of a translated entry. Zero selects the
	// default; a negative value disables context.
	ContextWindow int
	// MaxConcurrent caps in-flight per-entry calls.
	MaxConcurrent int
	// RateLimitDelay is held inside the admission slot after each call.
	RateLimitDelay time.Duration
	// CallTimeout bounds each individual call. Zero leaves the
	// client's own timeout in charge.
	CallTimeout time.Duration
	// Bulk switches from one call per entry to one call per chunk with
	// positional reassembly of the combined response.
	Bulk bool
	// Scene and Speaker are optional hints passed through to every
	// entry's context.
	Scene   string
	Speaker string
}

func (o Options) withDefaults() Options {
	if o.TargetLanguage == "" {
		o.TargetLanguage = DefaultTargetLanguage
	}
	if o.ChunkBudget == 0 {
		o.ChunkBudget = DefaultChunkBudget
	}
	if o.ContextWindow == 0 {
		o.ContextWindow = DefaultContextWindow
	} else if o.ContextWindow < 0 {
		o.ContextWindow = 0
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = DefaultMaxConcurrent
	}
	return o
}
