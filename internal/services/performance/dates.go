package performance

import (
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

// InvalidDateLabel is shown in place of a month label when a snapshot date
// cannot be parsed.
const InvalidDateLabel = "Invalid Date"

// parseSnapshotDate accepts "2006-01-02" and full RFC 3339 timestamps, the two
// shapes data sources hand back for a date column.
func parseSnapshotDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(models.SnapshotDateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// yearStart returns the anchor key for the year of t, formatted like input dates.
func yearStart(t time.Time) string {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC).Format(models.SnapshotDateLayout)
}

// monthIndex counts months since year 0 so consecutive months differ by one.
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
