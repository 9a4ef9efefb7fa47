package streak

import (
	"time"

	"github.com/yuchingh/daybook/internal/model"
)

// Cursor is the calendar's (year, month) position, independent of the
// dashboard's own month selector. It is reset to the current month whenever
// the modal opens and discarded on close.
type Cursor struct {
	Year  int
	Month int // 1-12
}

// CursorFor returns the cursor for the month containing date (yyyy-mm-dd),
// falling back to now's month when the date does not parse.
func CursorFor(date string, now time.Time) Cursor {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		t = now
	}
	return Cursor{Year: t.Year(), Month: int(t.Month())}
}

// Prev moves one month back, rolling the year over.
func (c Cursor) Prev() Cursor {
	t := time.Date(c.Year, time.Month(c.Month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return Cursor{Year: t.Year(), Month: int(t.Month())}
}

// Next moves one month forward, rolling the year over.
func (c Cursor) Next() Cursor {
	t := time.Date(c.Year, time.Month(c.Month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return Cursor{Year: t.Year(), Month: int(t.Month())}
}

// DayCell is one day of the rendered month grid.
type DayCell struct {
	Day     int
	Date    string // yyyy-mm-dd
	HasLog  bool
	Source  model.LogSource
	IsToday bool
}

// Grid is a month laid out for a 7-column week starting on Sunday.
type Grid struct {
	Year          int
	Month         int
	LeadingBlanks int // blank cells before the 1st
	Days          []DayCell
}

// BuildGrid lays out the cursor's month. Dates after today never carry a log
// source even when present in the data, which guards against future-dated
// artifacts from cross-timezone clients.
func BuildGrid(c Cursor, logged map[string]model.LogSource, today string) Grid {
	first := time.Date(c.Year, time.Month(c.Month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := Grid{
		Year:          c.Year,
		Month:         c.Month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]DayCell, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(c.Year, time.Month(c.Month), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		cell := DayCell{
			Day:     day,
			Date:    date,
			IsToday: date == today,
		}
		// Lexicographic compare is date order for yyyy-mm-dd.
		if source, ok := logged[date]; ok && date <= today {
			cell.HasLog = true
			cell.Source = source
		}
		grid.Days = append(grid.Days, cell)
	}
	return grid
}
