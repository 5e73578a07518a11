package weekly

import (
	"sort"
	"time"

	"github.com/dmitrymomot/engagement/core/tracker"
)

// DaysPerWeek is the fixed size of the aggregation window.
const DaysPerWeek = 7

// Report is one calendar week of engagement minutes, bucketed per day.
type Report struct {
	// WeekStart is midnight of the first day of the week (Sunday) in the
	// reference clock's location.
	WeekStart time.Time

	// Dates are the seven consecutive calendar dates starting at WeekStart.
	Dates [DaysPerWeek]time.Time

	// Days holds per-day minute totals, each rounded to the nearest
	// 10-minute increment for display. The underlying per-session minute
	// values are never rounded.
	Days [DaysPerWeek]int

	// Total is the sum of the seven rounded day buckets.
	Total int
}

// Aggregate buckets a user's session records into the calendar week selected
// by weekOffset relative to the week containing now: 0 is the current week,
// -1 the previous one, positive values future weeks (trivially zero unless
// future-dated data exists).
//
// Sessions are attributed in full to the calendar date of their start; an
// interval crossing a day or week boundary is never split. Open sessions
// (no end recorded yet) contribute zero minutes regardless of elapsed
// wall-clock time. Both rules are deliberate and load-bearing for output
// stability.
//
// Aggregate is pure: it owns no state, does not mutate its input, and may be
// called concurrently.
func Aggregate(sessions []tracker.Session, weekOffset int, now time.Time) Report {
	report := Report{WeekStart: weekStart(now, weekOffset)}

	// Day boundaries via AddDate so DST-shortened days bucket correctly.
	var bounds [DaysPerWeek + 1]time.Time
	for i := 0; i <= DaysPerWeek; i++ {
		bounds[i] = report.WeekStart.AddDate(0, 0, i)
	}
	copy(report.Dates[:], bounds[:DaysPerWeek])

	// List-by-user is unordered; ordering is this reader's responsibility.
	sorted := make([]tracker.Session, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.Before(sorted[j].StartedAt)
	})

	raw := [DaysPerWeek]int{}
	for _, sess := range sorted {
		if sess.StartedAt.Before(bounds[0]) || !sess.StartedAt.Before(bounds[DaysPerWeek]) {
			continue
		}
		if sess.IsOpen() {
			// Abandoned or ongoing: counts as zero until closed.
			continue
		}
		for i := 0; i < DaysPerWeek; i++ {
			if sess.StartedAt.Before(bounds[i+1]) {
				raw[i] += sess.DurationMinutes
				break
			}
		}
	}

	for i, minutes := range raw {
		report.Days[i] = roundToTen(minutes)
		report.Total += report.Days[i]
	}
	return report
}

// weekStart returns midnight of the Sunday beginning the week containing
// now, shifted by weekOffset whole weeks.
func weekStart(now time.Time, weekOffset int) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday())+weekOffset*DaysPerWeek)
}

// roundToTen rounds non-negative minute totals to the nearest 10, half up:
// 14 → 10, 15 → 20. Display-only.
func roundToTen(minutes int) int {
	return (minutes + 5) / 10 * 10
}
