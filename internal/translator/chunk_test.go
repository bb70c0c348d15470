package translator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtrans/internal/subtitle"
)

func makeEntries(n int) []subtitle.Entry {
	entries := make([]subtitle.Entry, n)
	for i := range entries {
		entries[i] = subtitle.Entry{
			Index: i + 1,
			Start: "00:00:01,000",
			End:   "00:00:02,000",
			Text:  fmt.Sprintf("subtitle line %d", i+1),
		}
	}
	return entries
}

func TestSplitChunksPartitionInvariant(t *testing.T) {
	entries := makeEntries(10)

	for _, budget := range []int{1, 50, 100, 1000, 100000} {
		chunks, err := SplitChunks(entries, budget)
		require.NoError(t, err, "budget %d", budget)

		// concatenated chunks must equal the input exactly
		var rejoined []subtitle.Entry
		for _, chunk := range chunks {
			rejoined = append(rejoined, chunk.Entries...)
		}
		assert.Equal(t, entries, rejoined, "budget %d", budget)
	}
}

func TestSplitChunksRespectsBudget(t *testing.T) {
	entries := makeEntries(10)
	budget := entries[0].Size() * 3

	chunks, err := SplitChunks(entries, budget)
	require.NoError(t, err)

	for i, chunk := range chunks {
		if len(chunk.Entries) > 1 {
			assert.LessOrEqual(t, chunk.Size, budget, "chunk %d", i)
		}
	}
}

func TestSplitChunksOversizeSingleton(t *testing.T) {
	entries := makeEntries(3)
	entries[1].Text = strings.Repeat("long ", 100)

	chunks, err := SplitChunks(entries, entries[0].Size()+1)
	require.NoError(t, err)

	// the oversize entry sits alone in its own chunk
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[1].Entries, 1)
	assert.Equal(t, 2, chunks[1].Entries[0].Index)
	assert.Greater(t, chunks[1].Size, entries[0].Size()+1)
}

func TestSplitChunksEmptyInput(t *testing.T) {
	chunks, err := SplitChunks(nil, 100)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Empty(t, chunks[0].Entries)
}

func TestSplitChunksRejectsNonPositiveBudget(t *testing.T) {
	for _, budget := range []int{0, -1, -1000} {
		_, err := SplitChunks(makeEntries(2), budget)
		require.Error(t, err, "budget %d", budget)
		assert.True(t, IsStructural(err), "budget %d", budget)
	}
}

func TestSplitChunksThreePerChunk(t *testing.T) {
	entries := makeEntries(7)
	budget := entries[0].Size()*3 + 2

	chunks, err := SplitChunks(entries, budget)
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0].Entries, 3)
	assert.Len(t, chunks[1].Entries, 3)
	assert.Len(t, chunks[2].Entries, 1)
}
