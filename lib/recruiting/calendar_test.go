package recruiting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriodPrecedence(t *testing.T) {
	w := DefaultWindows()
	// construct an overlap: a dead range covering the early signing window
	w.Dead = append(w.Dead, DateRange{
		Start: day(2026, time.December, 1),
		End:   day(2026, time.December, 31),
	})

	cases := []struct {
		date   time.Time
		expect Period
		name   string
	}{
		{day(2026, time.December, 19), PeriodEarlySigning, "early signing wins over dead"},
		{day(2026, time.December, 22), PeriodDead, "dead after signing window closes"},
		{day(2026, time.January, 10), PeriodPortalWindow, "winter portal"},
		{day(2026, time.April, 20), PeriodPortalWindow, "spring portal wins over evaluation"},
		{day(2026, time.May, 1), PeriodEvaluation, "spring evaluation"},
		{day(2026, time.June, 10), PeriodQuiet, "official visit season"},
		{day(2026, time.July, 4), PeriodDead, "summer dead period"},
		{day(2026, time.October, 14), PeriodContact, "september+ contact"},
		{day(2026, time.February, 10), PeriodQuiet, "default quiet"},
	}
	for _, c := range cases {
		got := PeriodFor(c.date, w)
		require.Equal(t, c.expect, got.Period, c.name)
	}
}

func TestAugustGameDayException(t *testing.T) {
	w := DefaultWindows()

	// 2026-08-08 is a Saturday, 2026-08-04 is a Tuesday
	sat := day(2026, time.August, 8)
	require.Equal(t, time.Saturday, sat.Weekday())
	tue := day(2026, time.August, 4)
	require.Equal(t, time.Tuesday, tue.Weekday())

	gameday := PeriodFor(sat, w)
	require.Equal(t, PeriodQuiet, gameday.Period)
	require.Equal(t, 1.5, gameday.ScrapeMultiplier)
	require.False(t, ShouldSkipScraping(gameday))

	dead := PeriodFor(tue, w)
	require.Equal(t, PeriodDead, dead.Period)
	require.Equal(t, 0.25, dead.ScrapeMultiplier)
	require.True(t, ShouldSkipScraping(dead))
}

func TestAdjustedIntervalHours(t *testing.T) {
	cases := []struct {
		base       int
		multiplier float64
		expect     int
	}{
		{24, 1, 24},
		{24, 4, 6},
		{24, 0.25, 96},
		{72, 2, 36},
		{168, 1.5, 112},
		{24, 1.5, 16},
	}
	for _, c := range cases {
		got := AdjustedIntervalHours(c.base, PeriodInfo{ScrapeMultiplier: c.multiplier})
		require.Equal(t, c.expect, got)
	}
}

func TestShouldSkipScrapingGating(t *testing.T) {
	// skip iff dead AND multiplier < 0.5
	require.True(t, ShouldSkipScraping(PeriodInfo{Period: PeriodDead, ScrapeMultiplier: 0.25}))
	require.False(t, ShouldSkipScraping(PeriodInfo{Period: PeriodDead, ScrapeMultiplier: 0.5}))
	require.False(t, ShouldSkipScraping(PeriodInfo{Period: PeriodQuiet, ScrapeMultiplier: 0.25}))
	require.False(t, ShouldSkipScraping(PeriodInfo{Period: PeriodQuiet, ScrapeMultiplier: 1.5}))
}

func TestActivityLevel(t *testing.T) {
	require.Equal(t, ActivityPeak, ActivityLevel(4))
	require.Equal(t, ActivityPeak, ActivityLevel(3))
	require.Equal(t, ActivityActive, ActivityLevel(1.5))
	require.Equal(t, ActivityQuiet, ActivityLevel(1))
	require.Equal(t, ActivityQuiet, ActivityLevel(0.5))
	require.Equal(t, ActivityDead, ActivityLevel(0.25))
}

func TestStatusNextEvent(t *testing.T) {
	w := DefaultWindows()

	status := StatusFor(day(2026, time.March, 1), w)
	require.Equal(t, "Spring Evaluation in 45 days", status.NextEvent)

	status = StatusFor(day(2026, time.December, 25), w)
	require.Equal(t, "Normal operations", status.NextEvent)
}
