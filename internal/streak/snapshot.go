// Package streak tracks the daily-logging streak snapshot the backend
// computes and decides when to surface the reaction modal for it.
package streak

import (
	"github.com/yuchingh/daybook/internal/model"
)

// Snapshot mirrors the backend's streak fields. It is replaced wholesale on
// every successful dashboard fetch; the client never recomputes Count,
// Broken, TotalDays or LongestStreak locally.
type Snapshot struct {
	// Count is the current consecutive-day streak.
	Count int
	// Broken means neither yesterday nor today has a qualifying entry.
	Broken bool
	// TotalDays is the cumulative count of distinct logged dates.
	TotalDays int
	// LongestStreak is the historical maximum of Count.
	LongestStreak int
	// LoggedDates maps yyyy-mm-dd to how that date qualified.
	LoggedDates map[string]model.LogSource
}

// SnapshotFrom builds a snapshot from a dashboard response.
func SnapshotFrom(data *model.DashboardData) Snapshot {
	logged := make(map[string]model.LogSource, len(data.LoggedDates))
	for _, d := range data.LoggedDates {
		if d.Date == "" {
			continue
		}
		// A transaction entry outranks a check-in for the same date.
		if existing, ok := logged[d.Date]; ok && existing == model.SourceTransaction {
			continue
		}
		logged[d.Date] = d.Source
	}
	return Snapshot{
		Count:         data.StreakCount,
		Broken:        data.StreakBroken,
		TotalDays:     data.TotalLoggedDays,
		LongestStreak: data.LongestStreak,
		LoggedDates:   logged,
	}
}

// Badge is the three-way state of the streak indicator.
type Badge int

const (
	BadgeNone Badge = iota
	BadgeActive
	BadgeBroken
)

// Badge selects the indicator state: broken wins, then any positive count.
func (s Snapshot) Badge() Badge {
	switch {
	case s.Broken:
		return BadgeBroken
	case s.Count > 0:
		return BadgeActive
	default:
		return BadgeNone
	}
}

// HasDate reports whether date (yyyy-mm-dd) is logged.
func (s Snapshot) HasDate(date string) bool {
	_, ok := s.LoggedDates[date]
	return ok
}

// AddProvisional optimistically records a local entry ahead of the next
// refresh confirming it server-side. It never downgrades a transaction
// entry to a check-in.
func (s *Snapshot) AddProvisional(date string, source model.LogSource) {
	if s.LoggedDates == nil {
		s.LoggedDates = make(map[string]model.LogSource, 1)
	}
	if existing, ok := s.LoggedDates[date]; ok && existing == model.SourceTransaction {
		return
	}
	s.LoggedDates[date] = source
}
