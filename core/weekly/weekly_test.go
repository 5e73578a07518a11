package weekly_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/engagement/core/tracker"
	"github.com/dmitrymomot/engagement/core/weekly"
)

// Monday, March 9th 2026. The week containing it starts Sunday, March 8th.
var (
	monday    = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	weekSun   = time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)
	reference = monday.Add(12 * time.Hour)
)

func closedSession(userID uuid.UUID, start time.Time, d time.Duration) tracker.Session {
	sess := tracker.Session{
		ID:        uuid.New(),
		UserID:    userID,
		StartedAt: start,
		PagePath:  "/courses",
	}
	sess.Close(start.Add(d))
	return sess
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("week starts on the most recent Sunday midnight", func(t *testing.T) {
		t.Parallel()

		report := weekly.Aggregate(nil, 0, reference)
		assert.True(t, report.WeekStart.Equal(weekSun))
		assert.True(t, report.Dates[0].Equal(weekSun))
		assert.True(t, report.Dates[6].Equal(weekSun.AddDate(0, 0, 6)))
	})

	t.Run("no sessions yields seven zero buckets", func(t *testing.T) {
		t.Parallel()

		report := weekly.Aggregate(nil, 0, reference)
		assert.Equal(t, [7]int{}, report.Days)
		assert.Equal(t, 0, report.Total)
	})

	t.Run("three sessions on one day bucket and round together", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		sessions := []tracker.Session{
			closedSession(userID, monday.Add(10*time.Hour), 25*time.Minute),
			closedSession(userID, monday.Add(10*time.Hour+30*time.Minute), 2*time.Minute),
			// Starts 23:58, ends 00:05 the next day; attributed to Monday in full.
			closedSession(userID, monday.Add(23*time.Hour+58*time.Minute), 7*time.Minute),
		}

		report := weekly.Aggregate(sessions, 0, reference)

		// raw 25+2+7 = 34 minutes, displayed as 30
		assert.Equal(t, [7]int{0, 30, 0, 0, 0, 0, 0}, report.Days)
		assert.Equal(t, 30, report.Total)
	})

	t.Run("total always equals the sum of the buckets", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		var sessions []tracker.Session
		for day := 0; day < 7; day++ {
			start := weekSun.AddDate(0, 0, day).Add(9 * time.Hour)
			sessions = append(sessions, closedSession(userID, start, time.Duration(day*13)*time.Minute))
		}

		for _, offset := range []int{-3, -1, 0, 1} {
			report := weekly.Aggregate(sessions, offset, reference)
			sum := 0
			for _, minutes := range report.Days {
				sum += minutes
			}
			assert.Equal(t, report.Total, sum, "weekOffset %d", offset)
		}
	})

	t.Run("session crossing a week boundary belongs to its start week", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		// Saturday 23:50 → Sunday 00:10 of the following week, 20 minutes.
		saturdayNight := weekSun.AddDate(0, 0, 6).Add(23*time.Hour + 50*time.Minute)
		sessions := []tracker.Session{closedSession(userID, saturdayNight, 20*time.Minute)}

		thisWeek := weekly.Aggregate(sessions, 0, reference)
		assert.Equal(t, [7]int{0, 0, 0, 0, 0, 0, 20}, thisWeek.Days)

		nextWeek := weekly.Aggregate(sessions, 1, reference)
		assert.Equal(t, 0, nextWeek.Total)
	})

	t.Run("open sessions contribute zero regardless of age", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		sessions := []tracker.Session{
			{ID: uuid.New(), UserID: userID, StartedAt: monday.Add(8 * time.Hour)}, // never closed
			closedSession(userID, monday.Add(10*time.Hour), 40*time.Minute),
		}

		report := weekly.Aggregate(sessions, 0, reference)
		assert.Equal(t, 40, report.Days[1])
		assert.Equal(t, 40, report.Total)
	})

	t.Run("previous week selected by negative offset", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		lastTuesday := weekSun.AddDate(0, 0, -5).Add(14 * time.Hour)
		sessions := []tracker.Session{closedSession(userID, lastTuesday, 50*time.Minute)}

		current := weekly.Aggregate(sessions, 0, reference)
		assert.Equal(t, 0, current.Total)

		previous := weekly.Aggregate(sessions, -1, reference)
		assert.True(t, previous.WeekStart.Equal(weekSun.AddDate(0, 0, -7)))
		assert.Equal(t, 50, previous.Days[2])
		assert.Equal(t, 50, previous.Total)
	})

	t.Run("future offsets are accepted and trivially zero", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		sessions := []tracker.Session{closedSession(userID, monday, time.Hour)}

		report := weekly.Aggregate(sessions, 4, reference)
		assert.True(t, report.WeekStart.Equal(weekSun.AddDate(0, 0, 28)))
		assert.Equal(t, 0, report.Total)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		sessions := []tracker.Session{
			closedSession(userID, monday.Add(20*time.Hour), 5*time.Minute),
			closedSession(userID, monday.Add(8*time.Hour), 5*time.Minute),
		}
		first := sessions[0]

		weekly.Aggregate(sessions, 0, reference)
		require.Equal(t, first, sessions[0], "aggregation must sort a copy")
	})
}

func TestAggregateRounding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rawMinutes int
		want       int
	}{
		{"zero stays zero", 0, 0},
		{"4 rounds down to 0", 4, 0},
		{"5 rounds up to 10", 5, 10},
		{"14 rounds down to 10", 14, 10},
		{"15 rounds up to 20", 15, 20},
		{"34 rounds down to 30", 34, 30},
		{"exact tens unchanged", 120, 120},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userID := uuid.New()
			sessions := []tracker.Session{
				closedSession(userID, monday.Add(9*time.Hour), time.Duration(tt.rawMinutes)*time.Minute),
			}

			report := weekly.Aggregate(sessions, 0, reference)
			assert.Equal(t, tt.want, report.Days[1])
		})
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "This Week", weekly.Label(0, weekSun))
	assert.Equal(t, "Last Week", weekly.Label(-1, weekSun.AddDate(0, 0, -7)))

	feb15 := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Feb 15 – Feb 21, 2026", weekly.Label(-3, feb15))

	dec28 := time.Date(2025, time.December, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Dec 28, 2025 – Jan 3, 2026", weekly.Label(-10, dec28))
}
