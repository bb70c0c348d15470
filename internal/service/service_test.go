package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"subtrans/internal/config"
	"subtrans/internal/llm"
	"subtrans/internal/translator"
)

type stubCompleter struct {
	reply string
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string, opts *llm.CompletionOptions) (string, error) {
	s.calls++
	return s.reply, nil
}

const englishSRT = `1
00:00:01,000 --> 00:00:02,500
Hello there, how are you doing today?

2
00:00:03,000 --> 00:00:04,500
The weather is quite nice this morning.
`

const japaneseSRT = `1
00:00:01,000 --> 00:00:02,500
これは日本語の字幕です。

2
00:00:03,000 --> 00:00:04,500
今日はとても良い天気ですね。
`

func testWatchConfig(dirs ...string) config.Config {
	return config.Config{
		Translate: config.TranslateConfig{
			TargetLanguage: language.Japanese,
		},
		Watch: config.WatchConfig{
			Dirs:     dirs,
			CronExpr: "*/30 * * * *",
		},
	}
}

func newTestService(t *testing.T, cfg config.Config, completer *stubCompleter) *WatchService {
	t.Helper()
	pipeline, err := translator.NewPipeline(completer, translator.Options{ContextWindow: -1}, nil)
	require.NoError(t, err)
	return NewWatchService(cfg, pipeline, cron.New())
}

func TestScanOnceTranslatesNewSubtitle(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "movie.srt")
	require.NoError(t, os.WriteFile(source, []byte(englishSRT), 0644))

	completer := &stubCompleter{reply: "翻訳されたテキスト"}
	svc := newTestService(t, testWatchConfig(dir), completer)

	svc.ScanOnce(context.Background())

	output := filepath.Join(dir, "movie.ja.srt")
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "翻訳されたテキスト")
	assert.Contains(t, string(data), "00:00:01,000 --> 00:00:02,500")
	assert.Equal(t, 2, completer.calls)
}

func TestScanOnceSkipsExistingTranslation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movie.srt"), []byte(englishSRT), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movie.ja.srt"), []byte(japaneseSRT), 0644))

	completer := &stubCompleter{reply: "翻訳"}
	svc := newTestService(t, testWatchConfig(dir), completer)

	svc.ScanOnce(context.Background())

	assert.Zero(t, completer.calls)
}

func TestScanOnceSkipsTargetLanguageSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anime.srt"), []byte(japaneseSRT), 0644))

	completer := &stubCompleter{reply: "翻訳"}
	svc := newTestService(t, testWatchConfig(dir), completer)

	svc.ScanOnce(context.Background())

	assert.Zero(t, completer.calls)
	_, err := os.Stat(filepath.Join(dir, "anime.ja.srt"))
	assert.True(t, os.IsNotExist(err))
}

func TestScanOnceMissingDirDoesNotAbortOthers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movie.srt"), []byte(englishSRT), 0644))

	completer := &stubCompleter{reply: "翻訳"}
	svc := newTestService(t, testWatchConfig(filepath.Join(dir, "missing"), dir), completer)

	svc.ScanOnce(context.Background())

	_, err := os.Stat(filepath.Join(dir, "movie.ja.srt"))
	assert.NoError(t, err)
}

func TestScanOnceSecondPassSeesNothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movie.srt"), []byte(englishSRT), 0644))

	completer := &stubCompleter{reply: "翻訳"}
	svc := newTestService(t, testWatchConfig(dir), completer)

	svc.ScanOnce(context.Background())
	calls := completer.calls
	require.Positive(t, calls)

	// source unchanged since the first scan, so the cutoff excludes it
	svc.ScanOnce(context.Background())
	assert.Equal(t, calls, completer.calls)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "/media/movie.ja.srt", OutputPath("/media/movie.srt", language.Japanese))
	assert.Equal(t, "show.de.srt", OutputPath("show.srt", language.German))
}

func TestIsTranslationOutput(t *testing.T) {
	assert.True(t, isTranslationOutput("movie.ja.srt", language.Japanese))
	assert.False(t, isTranslationOutput("movie.srt", language.Japanese))
	assert.False(t, isTranslationOutput("movie.en.srt", language.Japanese))
}

func TestScheduleRegistersCronEntry(t *testing.T) {
	runner := cron.New()
	completer := &stubCompleter{reply: "翻訳"}
	cfg := testWatchConfig(t.TempDir())

	pipeline, err := translator.NewPipeline(completer, translator.Options{}, nil)
	require.NoError(t, err)

	svc := NewWatchService(cfg, pipeline, runner)
	require.NoError(t, svc.Schedule(context.Background()))
	assert.Len(t, runner.Entries(), 1)

	bad := NewWatchService(config.Config{
		Watch: config.WatchConfig{CronExpr: "not a cron"},
	}, pipeline, cron.New())
	assert.Error(t, bad.Schedule(context.Background()))
}
