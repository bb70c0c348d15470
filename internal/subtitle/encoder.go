package subtitle

import (
	"fmt"
	"os"
	"strings"
)

// Encode renders entries back into SRT text. Consecutive entries are
// joined by exactly one blank line and the last entry carries no
// trailing separator, so Encode(Parse(s)) == s for any s produced by
// Encode itself.
func Encode(entries []Entry) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("no entries to encode")
	}

	for i, entry := range entries {
		if entry.Start == "" || entry.End == "" || entry.Text == "" {
			return "", fmt.Errorf("incomplete entry at position %d (index %d)", i, entry.Index)
		}
	}

	var sb strings.Builder
	for i, entry := range entries {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%d\n", entry.Index)
		fmt.Fprintf(&sb, "%s --> %s\n", entry.Start, entry.End)
		sb.WriteString(entry.Text)
	}

	return sb.String(), nil
}

// WriteFile encodes entries and writes them to path.
func WriteFile(path string, entries []Entry) error {
	content, err := Encode(entries)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}
	return nil
}
