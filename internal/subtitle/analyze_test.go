package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestAnalyze(t *testing.T) {
	entries := []Entry{
		{Index: 1, Start: "00:00:10,000", End: "00:00:12,000", Text: "Hello."},
		{Index: 2, Start: "00:00:13,000", End: "00:00:15,500", Text: "Two\nlines here."},
	}

	analysis := Analyze(entries, false)
	assert.Equal(t, 2, analysis.EntryCount)
	assert.Equal(t, 6+15, analysis.TotalCharacters)
	assert.InDelta(t, 10.5, analysis.AverageCharacters, 0.001)
	assert.Equal(t, "00:00:10,000", analysis.FirstTimestamp)
	assert.Equal(t, "00:00:15,500", analysis.LastTimestamp)
	assert.InDelta(t, 5.5, analysis.TotalDuration, 0.001)
	assert.Nil(t, analysis.Detail)
}

func TestAnalyzeDetailed(t *testing.T) {
	entries := []Entry{
		{Index: 1, Start: "00:00:01,000", End: "00:00:02,000", Text: "Good morning, how is everyone doing today?"},
		{Index: 2, Start: "00:00:03,000", End: "00:00:04,000", Text: "We are doing\njust fine, thank you."},
		{Index: 3, Start: "00:00:05,000", End: "00:00:06,000", Text: "Great."},
	}

	analysis := Analyze(entries, true)
	require.NotNil(t, analysis.Detail)
	assert.Equal(t, 2, analysis.Detail.MaxLines)
	assert.Equal(t, 1, analysis.Detail.MultiLine)
	assert.Equal(t, 42, analysis.Detail.MaxCharacters)
	assert.Equal(t, 6, analysis.Detail.MinCharacters)
	assert.Equal(t, "en", analysis.Language)
}

func TestAnalyzeEmpty(t *testing.T) {
	analysis := Analyze(nil, true)
	assert.Equal(t, 0, analysis.EntryCount)
	assert.Zero(t, analysis.TotalCharacters)
	assert.Nil(t, analysis.Detail)
}

func TestDetectLanguage(t *testing.T) {
	entries := []Entry{
		{Text: "Hello, world, this is a longer English sentence."},
		{Text: "こんにちは、世界。今日はいい天気ですね。"},
		{Text: "こんにちは、世界。字幕の翻訳をテストしています。"},
	}

	assert.Equal(t, language.Japanese, DetectLanguage(entries))
	assert.Equal(t, language.Und, DetectLanguage(nil))
}
