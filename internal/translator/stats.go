package translator

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Stats accumulates pipeline counters across invocations. It is owned
// by the caller and passed into the pipeline, so there is no
// process-global mutable state; an HTTP server and a watch service can
// each keep their own accumulator. Safe for concurrent use.
type Stats struct {
	mu sync.Mutex

	runs              int
	entries           int
	translatedEntries int
	failedEntries     int
	failedChunks      int
	characters        int

	lastRunID    string
	lastRunAt    time.Time
	lastDuration time.Duration
}

func NewStats() *Stats {
	return &Stats{}
}

// BeginRun registers a new pipeline invocation and returns its run ID.
func (s *Stats) BeginRun() string {
	runID := uuid.NewString()

	s.mu.Lock()
	s.runs++
	s.lastRunID = runID
	s.lastRunAt = time.Now()
	s.mu.Unlock()

	return runID
}

// RecordEntries accounts for one invocation's input volume.
func (s *Stats) RecordEntries(count, characters int) {
	s.mu.Lock()
	s.entries += count
	s.characters += characters
	s.mu.Unlock()
}

// RecordOutcome accounts for how an invocation's entries fared.
func (s *Stats) RecordOutcome(translated, failed int) {
	s.mu.Lock()
	s.translatedEntries += translated
	s.failedEntries += failed
	s.mu.Unlock()
}

// RecordChunkFailure counts one whole-chunk bulk failure.
func (s *Stats) RecordChunkFailure() {
	s.mu.Lock()
	s.failedChunks++
	s.mu.Unlock()
}

// EndRun records the duration of the invocation started by BeginRun.
func (s *Stats) EndRun(duration time.Duration) {
	s.mu.Lock()
	s.lastDuration = duration
	s.mu.Unlock()
}

// Snapshot is a plain copy of the counters, suitable for JSON.
type Snapshot struct {
	Runs              int           `json:"runs"`
	Entries           int           `json:"entries"`
	TranslatedEntries int           `json:"translated_entries"`
	FailedEntries     int           `json:"failed_entries"`
	FailedChunks      int           `json:"failed_chunks"`
	Characters        int           `json:"characters"`
	LastRunID         string        `json:"last_run_id,omitempty"`
	LastRunAt         time.Time     `json:"last_run_at"`
	LastDuration      time.Duration `json:"last_duration_ns"`
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Runs:              s.runs,
		Entries:           s.entries,
		TranslatedEntries: s.translatedEntries,
		FailedEntries:     s.failedEntries,
		FailedChunks:      s.failedChunks,
		Characters:        s.characters,
		LastRunID:         s.lastRunID,
		LastRunAt:         s.lastRunAt,
		LastDuration:      s.lastDuration,
	}
}
