package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"

	"subtrans/internal/config"
	"subtrans/internal/subtitle"
	"subtrans/internal/translator"
	"subtrans/pkg/file"
	"subtrans/pkg/icron"
	"subtrans/pkg/log"
)

// WatchService periodically scans the configured directories for
// subtitle files that have no translation yet and runs them through
// the pipeline. Output lands next to the source as
// "<base>.<lang>.srt".
type WatchService struct {
	cfg      config.Config
	pipeline *translator.Pipeline
	cron     *cron.Cron
	cronExpr string

	lastScanTime time.Time
}

func NewWatchService(
	cfg config.Config,
	pipeline *translator.Pipeline,
	cron *cron.Cron,
) *WatchService {
	return &WatchService{
		cfg:      cfg,
		pipeline: pipeline,
		cron:     cron,
		cronExpr: cfg.Watch.CronExpr,
	}
}

var scanGroup singleflight.Group

// Schedule registers the periodic scan on the cron runner. Overlapping
// triggers collapse into one running scan.
func (s *WatchService) Schedule(ctx context.Context) error {
	log.Info("Scheduling watch service with cron expression %q", s.cronExpr)

	runFunc := func() {
		_, _, _ = scanGroup.Do("scan", func() (any, error) {
			s.ScanOnce(ctx)
			return nil, nil
		})
	}
	_, err := s.cron.AddFunc(s.cronExpr, runFunc)
	return err
}

// ScanOnce walks every watch directory once. Per-directory failures
// are logged and do not stop the remaining directories.
func (s *WatchService) ScanOnce(ctx context.Context) {
	startTime := s.startTime()
	s.lastScanTime = time.Now()

	for _, dir := range s.cfg.Watch.Dirs {
		log.Info("Scanning dir %s for subtitles modified after %v", dir, startTime)
		if err := s.scanDir(ctx, dir, startTime); err != nil {
			log.Error("Failed to scan dir %s: %v", dir, err)
		}
	}
}

func (s *WatchService) scanDir(ctx context.Context, dir string, startTime time.Time) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("directory %s does not exist", dir)
	}

	recentFiles, err := file.FindRecentAfter(dir, startTime)
	if err != nil {
		return fmt.Errorf("failed to find recent files: %w", err)
	}

	candidates := file.FilterByExt(recentFiles, ".srt")
	log.Info("Found %d recent subtitle files in dir %s", len(candidates), dir)

	for _, path := range candidates {
		if err := s.processFile(ctx, path); err != nil {
			log.Error("Failed to process %s: %v", path, err)
		}
	}
	return nil
}

// processFile translates one subtitle file unless it should be
// skipped: own output files, files already in the target language, and
// files whose output sibling already exists.
func (s *WatchService) processFile(ctx context.Context, path string) error {
	target := s.cfg.Translate.TargetLanguage

	if isTranslationOutput(path, target) {
		return nil
	}

	outputPath := OutputPath(path, target)
	if _, err := os.Stat(outputPath); err == nil {
		log.Info("Translation %s already exists, skipping", outputPath)
		return nil
	}

	entries, err := subtitle.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read subtitle file: %w", err)
	}
	if len(entries) == 0 {
		log.Warn("Subtitle file %s has no entries, skipping", path)
		return nil
	}

	if detected := subtitle.DetectLanguage(entries); sameLanguage(detected, target) {
		log.Info("Subtitle file %s is already in %s, skipping", path, target)
		return nil
	}

	log.Info("Translating %s -> %s", path, outputPath)
	translated, err := s.pipeline.Translate(ctx, entries)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	return subtitle.WriteFile(outputPath, translated)
}

// startTime picks the modification-time cutoff for a scan: the
// previous scan when there was one, otherwise the previous cron
// trigger, otherwise a week back.
func (s *WatchService) startTime() time.Time {
	if !s.lastScanTime.IsZero() {
		return s.lastScanTime
	}

	info, err := icron.GetTriggerInfo(s.cronExpr, time.Now())
	if err != nil || info.Last.IsZero() {
		return time.Now().Add(-7 * 24 * time.Hour)
	}
	return info.Last
}

// OutputPath is the translation sibling of a subtitle file, e.g.
// "movie.srt" with target ja becomes "movie.ja.srt".
func OutputPath(path string, target language.Tag) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return fmt.Sprintf("%s.%s.srt", base, target)
}

// isTranslationOutput reports whether path already carries the target
// language suffix this service writes.
func isTranslationOutput(path string, target language.Tag) bool {
	return strings.HasSuffix(path, fmt.Sprintf(".%s.srt", target))
}

func sameLanguage(detected, target language.Tag) bool {
	if detected == language.Und {
		return false
	}
	base, confidence := detected.Base()
	targetBase, _ := target.Base()
	return confidence != language.No && base == targetBase
}
