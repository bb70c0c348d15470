package icron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// TriggerInfo describes where a cron expression sits relative to a
// reference time.
type TriggerInfo struct {
	Next       time.Time
	Last       time.Time
	Expression string

	TimeSinceLast time.Duration
	TimeUntilNext time.Duration
}

// searchWindows are the look-back spans tried in order when
// recovering the previous trigger. The scan stops at the first window
// that contains one, so frequent schedules stay cheap and sparse ones
// are still found within a year.
var searchWindows = []time.Duration{
	time.Hour,
	24 * time.Hour,
	31 * 24 * time.Hour,
	366 * 24 * time.Hour,
}

// GetTriggerInfo computes the previous and next trigger times of a
// standard five-field cron expression relative to refTime. Cron
// schedules only expose the next trigger, so the previous one is
// recovered by scanning forward through progressively wider windows
// behind refTime. Expressions that never fire within a year report a
// zero Last.
func GetTriggerInfo(cronExpr string, refTime time.Time) (*TriggerInfo, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour |
		cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}

	info := &TriggerInfo{
		Expression: cronExpr,
		Next:       schedule.Next(refTime),
	}
	info.TimeUntilNext = info.Next.Sub(refTime)

	for _, window := range searchWindows {
		cursor := refTime.Add(-window)
		var last time.Time
		for {
			next := schedule.Next(cursor)
			if next.IsZero() || next.After(refTime) {
				break
			}
			last = next
			cursor = next
		}
		if !last.IsZero() {
			info.Last = last
			break
		}
	}
	if !info.Last.IsZero() {
		info.TimeSinceLast = refTime.Sub(info.Last)
	}

	return info, nil
}
