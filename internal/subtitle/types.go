package subtitle

import "strconv"

// Entry represents a single subtitle unit of an SRT stream.
// Start and End keep the original "HH:MM:SS,mmm" formatting so that
// translation never disturbs timing. Entries are treated as immutable:
// translation produces new Entries with a replaced Text.
type Entry struct {
	Index int    // sequence number, unique but not necessarily contiguous
	Start string // start timestamp, HH:MM:SS,mmm
	End   string // end timestamp, HH:MM:SS,mmm
	Text  string // subtitle text, may contain embedded line breaks
}

// WithText returns a copy of the entry carrying the given text.
func (e Entry) WithText(text string) Entry {
	return Entry{
		Index: e.Index,
		Start: e.Start,
		End:   e.End,
		Text:  text,
	}
}

// Size is the serialized length of the entry in SRT form, including
// the trailing blank-line separator. The chunk splitter budgets on it.
func (e Entry) Size() int {
	// index line + newline, timing line + newline, text + two newlines
	return len(strconv.Itoa(e.Index)) + 1 + len(e.Start) + len(" --> ") + len(e.End) + 1 + len(e.Text) + 2
}
