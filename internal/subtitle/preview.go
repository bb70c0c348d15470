package subtitle

// Preview is a short excerpt of a subtitle sequence, used to eyeball
// content without dumping the whole file.
type Preview struct {
	TotalEntries int     `json:"total_entries"`
	Head         []Entry `json:"head,omitempty"`
	Tail         []Entry `json:"tail,omitempty"`
	MiddleSample *Entry  `json:"middle_sample,omitempty"`
}

// NewPreview extracts up to n leading and n trailing entries. When the
// sequence is long enough a single entry from the middle is sampled as
// well. Head and tail never overlap.
func NewPreview(entries []Entry, n int) Preview {
	if n <= 0 {
		n = 5
	}

	preview := Preview{TotalEntries: len(entries)}
	if len(entries) == 0 {
		return preview
	}

	head := n
	if head > len(entries) {
		head = len(entries)
	}
	preview.Head = append([]Entry(nil), entries[:head]...)

	if len(entries) > n {
		tailStart := len(entries) - n
		if tailStart < head {
			tailStart = head
		}
		preview.Tail = append([]Entry(nil), entries[tailStart:]...)
	}

	if len(entries) > n*3 {
		middle := entries[len(entries)/2]
		preview.MiddleSample = &middle
	}

	return preview
}
