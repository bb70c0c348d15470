package translator

import (
	"subtrans/internal/subtitle"
)

// SplitChunks greedily partitions entries into contiguous chunks whose
// serialized size stays within budget. An entry is never split: one
// whose own size exceeds the budget simply occupies a chunk of its
// own. Empty input yields a single empty chunk so bulk mode still has
// something to send. A non-positive budget is a structural error.
func SplitChunks(entries []subtitle.Entry, budget int) ([]Chunk, error) {
	if budget <= 0 {
		return nil, newStructuralError("chunk budget must be positive, got %d", budget)
	}

	if len(entries) == 0 {
		return []Chunk{{}}, nil
	}

	var chunks []Chunk
	var current Chunk

	for _, entry := range entries {
		size := entry.Size()

		if current.Size+size > budget && len(current.Entries) > 0 {
			chunks = append(chunks, current)
			current = Chunk{}
		}

		current.Entries = append(current.Entries, entry)
		current.Size += size
	}

	chunks = append(chunks, current)
	return chunks, nil
}
