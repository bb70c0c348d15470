package translator

import (
	"context"
	"time"

	"subtrans/internal/subtitle"
	"subtrans/pkg/log"
)

// Pipeline is the orchestrator: split the input into chunks, translate
// each chunk in order, and concatenate the results back into one
// ordered sequence. Per-entry and per-chunk call failures are absorbed
// with an original-text fallback and surface only in logs and the
// stats accumulator; only structural failures are returned.
type Pipeline struct {
	dispatcher *Dispatcher
	opts       Options
	stats      *Stats
}

// NewPipeline builds a pipeline around completer. The stats
// accumulator is owned by the caller; passing nil creates a private
// one.
func NewPipeline(completer Completer, opts Options, stats *Stats) (*Pipeline, error) {
	if completer == nil {
		return nil, newStructuralError("completer is required")
	}
	if opts.ChunkBudget < 0 {
		return nil, newStructuralError("chunk budget must be positive, got %d", opts.ChunkBudget)
	}
	if stats == nil {
		stats = NewStats()
	}

	opts = opts.withDefaults()
	return &Pipeline{
		dispatcher: NewDispatcher(completer, opts),
		opts:       opts,
		stats:      stats,
	}, nil
}

// Stats returns a snapshot of the caller-owned accumulator.
func (p *Pipeline) Stats() Snapshot {
	return p.stats.Snapshot()
}

// Translate runs the full pipeline over an ordered entry sequence.
// The output has the same length and the same (sequence, start, end)
// ordering as the input; entries whose calls failed carry their
// original text.
func (p *Pipeline) Translate(ctx context.Context, entries []subtitle.Entry) ([]subtitle.Entry, error) {
	runID := p.stats.BeginRun()
	startedAt := time.Now()
	defer func() {
		p.stats.EndRun(time.Since(startedAt))
	}()

	characters := 0
	for _, entry := range entries {
		characters += len([]rune(entry.Text))
	}
	p.stats.RecordEntries(len(entries), characters)

	chunks, err := SplitChunks(entries, p.opts.ChunkBudget)
	if err != nil {
		return nil, err
	}

	log.Info("run %s: translating %d entries in %d chunks (bulk=%v, budget=%d)",
		runID, len(entries), len(chunks), p.opts.Bulk, p.opts.ChunkBudget)

	output := make([]subtitle.Entry, 0, len(entries))
	offset := 0
	failedTotal := 0

	for chunkNum, chunk := range chunks {
		if len(chunk.Entries) == 0 {
			continue
		}

		var translated []subtitle.Entry
		var failed int
		if p.opts.Bulk {
			translated, failed = p.translateChunkBulk(ctx, chunk)
		} else {
			translated, failed = p.dispatcher.TranslateRange(ctx, entries, offset, offset+len(chunk.Entries))
		}

		// Defensive: a chunk must come back at its own size. Recover
		// what is there and keep going rather than aborting the run.
		if len(translated) != len(chunk.Entries) {
			log.Warn("run %s: chunk %d returned %d of %d entries, padding with originals",
				runID, chunkNum+1, len(translated), len(chunk.Entries))
			translated = padToChunk(translated, chunk.Entries)
		}

		output = append(output, translated...)
		offset += len(chunk.Entries)
		failedTotal += failed

		log.Info("run %s: chunk %d/%d done (%d entries, %d failed)",
			runID, chunkNum+1, len(chunks), len(chunk.Entries), failed)
	}

	p.stats.RecordOutcome(len(output)-failedTotal, failedTotal)

	log.Info("run %s: completed, %d entries translated, %d kept original text",
		runID, len(output)-failedTotal, failedTotal)
	return output, nil
}

// translateChunkBulk runs the single-call path plus positional
// reassembly. When the one call fails the whole chunk falls back to
// its original entries.
func (p *Pipeline) translateChunkBulk(ctx context.Context, chunk Chunk) ([]subtitle.Entry, int) {
	raw, err := p.dispatcher.TranslateBulk(ctx, chunk.Entries)
	if err != nil {
		logChunkFailure(err, len(chunk.Entries))
		p.stats.RecordChunkFailure()
		return append([]subtitle.Entry(nil), chunk.Entries...), len(chunk.Entries)
	}

	return Reassemble(raw, chunk.Entries)
}

// TranslateText is the text-in, text-out surface: parse, translate,
// encode. Input with no parseable entries is passed through verbatim
// so a caller feeding an empty file gets it back unchanged.
func (p *Pipeline) TranslateText(ctx context.Context, content string) (string, error) {
	entries, err := subtitle.Parse(content)
	if err != nil {
		return "", newStructuralErrorWithCause("failed to parse input", err)
	}
	if len(entries) == 0 {
		log.Warn("input contains no subtitle entries, returning it unchanged")
		return content, nil
	}

	translated, err := p.Translate(ctx, entries)
	if err != nil {
		return "", err
	}

	return subtitle.Encode(translated)
}

func padToChunk(translated, originals []subtitle.Entry) []subtitle.Entry {
	if len(translated) > len(originals) {
		return translated[:len(originals)]
	}
	for i := len(translated); i < len(originals); i++ {
		translated = append(translated, originals[i])
	}
	return translated
}

func logChunkFailure(err error, size int) {
	log.Error("bulk chunk call failed, keeping original text for %d entries: %v", size, err)
}

func newStructuralErrorWithCause(message string, cause error) *StructuralError {
	return &StructuralError{Message: message, Cause: cause}
}
