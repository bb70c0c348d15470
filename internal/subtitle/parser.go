package subtitle

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	blockSeparator = regexp.MustCompile(`\n\s*\n`)
	timingLine     = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})$`)
	timestampForm  = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3})$`)
)

// Parse decodes SRT text into an ordered list of entries.
//
// Blocks are separated by blank lines. A block shorter than three lines
// is ignored as incomplete, and an entry whose text is empty is
// dropped; both mirror how broken SRT files are conventionally
// repaired. A non-integer sequence line or malformed timing line is a
// hard parse error. Empty input yields an empty list.
func Parse(content string) ([]Entry, error) {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if content == "" {
		return nil, nil
	}

	var entries []Entry
	for blockNum, block := range blockSeparator.Split(content, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			return nil, fmt.Errorf("entry %d: invalid sequence number %q", blockNum+1, lines[0])
		}

		match := timingLine.FindStringSubmatch(strings.TrimSpace(lines[1]))
		if match == nil {
			return nil, fmt.Errorf("entry %d: invalid timing line %q", blockNum+1, lines[1])
		}
		start, end := match[1], match[2]
		if err := ValidateTimestamp(start); err != nil {
			return nil, fmt.Errorf("entry %d: %w", blockNum+1, err)
		}
		if err := ValidateTimestamp(end); err != nil {
			return nil, fmt.Errorf("entry %d: %w", blockNum+1, err)
		}

		text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
		if text == "" {
			continue
		}

		entries = append(entries, Entry{
			Index: index,
			Start: start,
			End:   end,
			Text:  text,
		})
	}

	return entries, nil
}

// ReadFile parses the SRT file at path.
func ReadFile(path string) ([]Entry, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".srt") {
		return nil, fmt.Errorf("only SRT subtitle files are supported: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	entries, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return entries, nil
}

// ValidateTimestamp checks the strict SRT timestamp form HH:MM:SS,mmm
// with hours 00-23, minutes and seconds 00-59, milliseconds 000-999.
func ValidateTimestamp(ts string) error {
	match := timestampForm.FindStringSubmatch(ts)
	if match == nil {
		return fmt.Errorf("invalid timestamp format %q", ts)
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])

	if hours > 23 || minutes > 59 || seconds > 59 {
		return fmt.Errorf("timestamp out of range %q", ts)
	}
	return nil
}

// ParseTimestamp converts an SRT timestamp into a duration from the
// start of the stream. The timestamp must already be valid.
func ParseTimestamp(ts string) (time.Duration, error) {
	if err := ValidateTimestamp(ts); err != nil {
		return 0, err
	}

	match := timestampForm.FindStringSubmatch(ts)
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	millis, _ := strconv.Atoi(match[4])

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// FormatTimestamp renders a duration as an SRT timestamp.
func FormatTimestamp(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
