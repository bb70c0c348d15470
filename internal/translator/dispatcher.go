package translator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"subtrans/internal/llm"
	"subtrans/internal/subtitle"
	"subtrans/pkg/log"
)

// perEntryMaxTokens bounds single-entry completions; bulk calls use
// the client's configured limit instead.
const perEntryMaxTokens = 500

// Dispatcher issues translation calls against the endpoint. Per-entry
// mode runs one call per entry under a counting admission gate; bulk
// mode runs one call for a whole serialized chunk.
type Dispatcher struct {
	completer Completer
	opts      Options
	gate      *semaphore.Weighted
}

func NewDispatcher(completer Completer, opts Options) *Dispatcher {
	opts = opts.withDefaults()
	return &Dispatcher{
		completer: completer,
		opts:      opts,
		gate:      semaphore.NewWeighted(int64(opts.MaxConcurrent)),
	}
}

// TranslateRange translates entries[start:end] with one call per
// entry, building each entry's context window against the full
// sequence. Calls run concurrently up to the configured cap; results
// land in original entry order regardless of completion order. A
// failed call keeps the original entry and is only counted; it never
// aborts its siblings. The returned slice always has end-start
// entries.
func (d *Dispatcher) TranslateRange(ctx context.Context, entries []subtitle.Entry, start, end int) ([]subtitle.Entry, int) {
	results := make([]subtitle.Entry, end-start)
	var failed int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for pos := start; pos < end; pos++ {
		wg.Add(1)
		go func(pos int) {
			defer wg.Done()

			entry := entries[pos]
			slot := pos - start

			if err := d.gate.Acquire(ctx, 1); err != nil {
				// invocation cancelled while waiting for a slot
				results[slot] = entry
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}

			translated, err := d.translateEntry(ctx, entries, pos)

			// Hold the slot through the rate-limit delay so call
			// spacing is enforced even at full concurrency.
			if d.opts.RateLimitDelay > 0 {
				time.Sleep(d.opts.RateLimitDelay)
			}
			d.gate.Release(1)

			if err != nil {
				logCallFailure(entry.Index, err)
				results[slot] = entry
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			results[slot] = entry.WithText(translated)
		}(pos)
	}

	wg.Wait()
	return results, failed
}

// translateEntry performs one per-entry call with its own timeout.
func (d *Dispatcher) translateEntry(ctx context.Context, entries []subtitle.Entry, pos int) (string, error) {
	entry := entries[pos]

	entryCtx := BuildContext(entries, pos, d.opts.ContextWindow)
	entryCtx.Scene = d.opts.Scene
	entryCtx.Speaker = d.opts.Speaker

	callCtx := ctx
	if d.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.opts.CallTimeout)
		defer cancel()
	}

	return d.completer.Complete(callCtx, buildEntryPrompt(entry.Text, entryCtx, d.opts.TargetLanguage), &llm.CompletionOptions{
		SystemPrompt: systemPrompt(d.opts.TargetLanguage),
		MaxTokens:    perEntryMaxTokens,
		Temperature:  0.3,
	})
}

// TranslateBulk serializes a whole chunk into one request and returns
// the raw response text for positional reassembly. A failure here
// fails the chunk; the orchestrator decides the fallback.
func (d *Dispatcher) TranslateBulk(ctx context.Context, entries []subtitle.Entry) (string, error) {
	serialized, err := subtitle.Encode(entries)
	if err != nil {
		return "", fmt.Errorf("failed to serialize chunk: %w", err)
	}

	callCtx := ctx
	if d.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.opts.CallTimeout)
		defer cancel()
	}

	if err := d.gate.Acquire(callCtx, 1); err != nil {
		return "", err
	}
	defer d.gate.Release(1)

	raw, err := d.completer.Complete(callCtx, buildBulkPrompt(serialized, d.opts.TargetLanguage), &llm.CompletionOptions{
		SystemPrompt: systemPrompt(d.opts.TargetLanguage),
		Temperature:  0.3,
	})

	if d.opts.RateLimitDelay > 0 {
		time.Sleep(d.opts.RateLimitDelay)
	}
	return raw, err
}

// logCallFailure records one failed endpoint call with its taxonomy
// kind when the error is classified.
func logCallFailure(entryIndex int, err error) {
	if kind, ok := llm.KindOf(err); ok {
		log.Error("entry %d: %s failure, keeping original text: %v", entryIndex, kind, err)
		return
	}
	log.Error("entry %d: call failed, keeping original text: %v", entryIndex, err)
}
