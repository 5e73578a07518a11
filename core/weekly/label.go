package weekly

import "time"

// Label derives a human-readable name for the aggregation window: the current
// and previous weeks get conventional names, everything else an explicit
// date range.
//
//	Label(0, ws)  // "This Week"
//	Label(-1, ws) // "Last Week"
//	Label(-3, ws) // "Feb 15 – Feb 21, 2026"
func Label(weekOffset int, weekStart time.Time) string {
	switch weekOffset {
	case 0:
		return "This Week"
	case -1:
		return "Last Week"
	}

	weekEnd := weekStart.AddDate(0, 0, DaysPerWeek-1)
	if weekStart.Year() == weekEnd.Year() {
		return weekStart.Format("Jan 2") + " – " + weekEnd.Format("Jan 2, 2006")
	}
	return weekStart.Format("Jan 2, 2006") + " – " + weekEnd.Format("Jan 2, 2006")
}
