package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContextWindowBounds(t *testing.T) {
	entries := makeEntries(5)

	// first position: no previous, next clipped to the window
	ctx := BuildContext(entries, 0, 2)
	assert.Empty(t, ctx.Previous)
	assert.Equal(t, []string{"subtitle line 2", "subtitle line 3"}, ctx.Next)

	// last position: previous is most-recent-last, no next
	ctx = BuildContext(entries, 4, 2)
	assert.Equal(t, []string{"subtitle line 3", "subtitle line 4"}, ctx.Previous)
	assert.Empty(t, ctx.Next)

	// middle position gets both sides
	ctx = BuildContext(entries, 2, 2)
	assert.Equal(t, []string{"subtitle line 1", "subtitle line 2"}, ctx.Previous)
	assert.Equal(t, []string{"subtitle line 4", "subtitle line 5"}, ctx.Next)
}

func TestBuildContextNearStart(t *testing.T) {
	entries := makeEntries(5)

	ctx := BuildContext(entries, 1, 3)
	assert.Equal(t, []string{"subtitle line 1"}, ctx.Previous)
	assert.Equal(t, []string{"subtitle line 3", "subtitle line 4", "subtitle line 5"}, ctx.Next)
}

func TestBuildContextDegenerate(t *testing.T) {
	entries := makeEntries(3)

	assert.Equal(t, Context{}, BuildContext(entries, -1, 2))
	assert.Equal(t, Context{}, BuildContext(entries, 3, 2))
	assert.Equal(t, Context{}, BuildContext(entries, 1, 0))
	assert.Equal(t, Context{}, BuildContext(nil, 0, 2))
}

func TestBuildContextWindowLargerThanSequence(t *testing.T) {
	entries := makeEntries(3)

	ctx := BuildContext(entries, 1, 10)
	assert.Equal(t, []string{"subtitle line 1"}, ctx.Previous)
	assert.Equal(t, []string{"subtitle line 3"}, ctx.Next)
}
