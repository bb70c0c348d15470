package translator

import (
	"regexp"
	"strings"

	"subtrans/internal/subtitle"
	"subtrans/pkg/log"
)

var bulkBlockSeparator = regexp.MustCompile(`\n\s*\n`)

// Reassemble pairs the blocks of a bulk response positionally with the
// chunk's original entries and re-attaches their sequence numbers and
// timing. The response's own sequence and timing lines are untrusted
// echoes and ignored; only the text lines of each block are taken.
//
// A malformed block, and every position past the last returned block,
// falls back to the original untranslated entry. The result always has
// exactly len(originals) entries. The second return is the number of
// positions that fell back.
func Reassemble(raw string, originals []subtitle.Entry) ([]subtitle.Entry, int) {
	blocks := splitBulkBlocks(raw)

	if len(blocks) != len(originals) {
		log.Warn("bulk response has %d blocks for %d entries, unmatched positions keep original text",
			len(blocks), len(originals))
	}

	results := make([]subtitle.Entry, len(originals))
	fallbacks := 0

	for i, original := range originals {
		if i >= len(blocks) {
			results[i] = original
			fallbacks++
			continue
		}

		text, ok := blockText(blocks[i])
		if !ok {
			log.Warn("bulk response block %d is malformed, keeping original text for entry %d",
				i+1, original.Index)
			results[i] = original
			fallbacks++
			continue
		}
		results[i] = original.WithText(text)
	}

	return results, fallbacks
}

// splitBulkBlocks cuts the raw response on blank-line boundaries,
// tolerating surrounding whitespace, CRLF line endings and trailing
// blank lines.
func splitBulkBlocks(raw string) []string {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	if raw == "" {
		return nil
	}

	var blocks []string
	for _, block := range bulkBlockSeparator.Split(raw, -1) {
		block = strings.TrimSpace(block)
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// blockText extracts the text-lines portion of one returned block. A
// block mirrors the SRT grammar: sequence line, timing line, then one
// or more text lines. Anything shorter is malformed.
func blockText(block string) (string, bool) {
	lines := strings.Split(block, "\n")
	if len(lines) < 3 {
		return "", false
	}

	text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
	if text == "" {
		return "", false
	}
	return text, true
}
