package translator

import (
	"subtrans/internal/subtitle"
)

// BuildContext collects the texts of up to window entries on each side
// of position pos. The window is clipped at the sequence bounds: the
// first entry gets no previous context and the last no next context.
// Pure function of its inputs; it must be evaluated against the live
// input sequence, never against partially translated output.
func BuildContext(entries []subtitle.Entry, pos, window int) Context {
	if pos < 0 || pos >= len(entries) || window <= 0 {
		return Context{}
	}

	start := pos - window
	if start < 0 {
		start = 0
	}
	end := pos + window + 1
	if end > len(entries) {
		end = len(entries)
	}

	ctx := Context{}
	for _, entry := range entries[start:pos] {
		ctx.Previous = append(ctx.Previous, entry.Text)
	}
	for _, entry := range entries[pos+1 : end] {
		ctx.Next = append(ctx.Next, entry.Text)
	}
	return ctx
}
