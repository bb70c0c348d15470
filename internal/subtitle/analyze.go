package subtitle

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// languageSampleSize caps how many entries feed language detection.
const languageSampleSize = 50

// Analysis summarizes a parsed subtitle sequence.
type Analysis struct {
	EntryCount        int           `json:"entry_count"`
	TotalCharacters   int           `json:"total_characters"`
	AverageCharacters float64       `json:"average_characters"`
	TotalDuration     float64       `json:"total_duration_seconds"`
	FirstTimestamp    string        `json:"first_timestamp"`
	LastTimestamp     string        `json:"last_timestamp"`
	Language          string        `json:"language,omitempty"`
	Detail            *DetailedStat `json:"detail,omitempty"`
}

// DetailedStat carries the optional per-entry breakdown.
type DetailedStat struct {
	MaxLines      int `json:"max_lines_per_entry"`
	MaxCharacters int `json:"max_characters"`
	MinCharacters int `json:"min_characters"`
	MultiLine     int `json:"multi_line_entries"`
}

// Analyze computes summary statistics for a subtitle sequence.
// With detailed set it additionally reports per-entry line and
// character extremes plus a language guess for the stream.
func Analyze(entries []Entry, detailed bool) Analysis {
	analysis := Analysis{EntryCount: len(entries)}
	if len(entries) == 0 {
		return analysis
	}

	for _, entry := range entries {
		analysis.TotalCharacters += len([]rune(entry.Text))
	}
	analysis.AverageCharacters = float64(analysis.TotalCharacters) / float64(len(entries))

	analysis.FirstTimestamp = entries[0].Start
	analysis.LastTimestamp = entries[len(entries)-1].End
	if first, err := ParseTimestamp(analysis.FirstTimestamp); err == nil {
		if last, err := ParseTimestamp(analysis.LastTimestamp); err == nil {
			analysis.TotalDuration = (last - first).Seconds()
		}
	}

	if !detailed {
		return analysis
	}

	detail := &DetailedStat{MinCharacters: len([]rune(entries[0].Text))}
	for _, entry := range entries {
		lines := strings.Count(entry.Text, "\n") + 1
		chars := len([]rune(entry.Text))

		if lines > detail.MaxLines {
			detail.MaxLines = lines
		}
		if lines > 1 {
			detail.MultiLine++
		}
		if chars > detail.MaxCharacters {
			detail.MaxCharacters = chars
		}
		if chars < detail.MinCharacters {
			detail.MinCharacters = chars
		}
	}
	analysis.Detail = detail
	analysis.Language = DetectLanguage(entries).String()

	return analysis
}

// DetectLanguage guesses the dominant language of a subtitle sequence
// by majority vote over a bounded sample of entries.
func DetectLanguage(entries []Entry) language.Tag {
	if len(entries) == 0 {
		return language.Und
	}

	sample := entries
	if len(sample) > languageSampleSize {
		sample = sample[:languageSampleSize]
	}

	votes := make(map[string]int)
	for _, entry := range sample {
		iso := whatlanggo.DetectLang(entry.Text).Iso6391()
		if iso == "" {
			continue
		}
		votes[iso]++
	}

	var topLang string
	var topCount int
	for lang, count := range votes {
		if count > topCount {
			topLang = lang
			topCount = count
		}
	}
	if topLang == "" {
		return language.Und
	}

	tag, err := language.Parse(topLang)
	if err != nil {
		return language.Und
	}
	return tag
}
