package scouts

import (
	"context"
	"errors"
	"testing"
	"time"

	"hsportal-backend/lib/urlresolver"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func setVerifiedAt(t *testing.T, svc Service, programID int64, at time.Time) {
	_, err := svc.db.Exec("UPDATE programs SET last_verified_at = ? WHERE id = ?", at.Unix(), programID)
	require.NoError(t, err)
}

func TestVerifyProgramsSelectsDueOldestFirst(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _, cleanup := setupScouts(t, Options{Fetcher: fetcher, Extractor: &fakeExtractor{}})
	defer cleanup()

	never := seedProgram(t, svc, "washington", "https://gohuskies.com/staff")
	stale := seedProgram(t, svc, "utah", "https://utahutes.com/staff")
	fresh := seedProgram(t, svc, "usc", "https://usctrojans.com/staff")
	setVerifiedAt(t, svc, stale.ID, testNow.Add(-30*time.Hour))
	setVerifiedAt(t, svc, fresh.ID, testNow.Add(-10*time.Hour))

	result, err := svc.VerifyPrograms(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, result.Verified)
	require.Empty(t, result.Errors)
	require.Equal(t, 24, result.AdjustedThresholdHours)

	// never-verified first, then stale; the fresh one is inside its
	// 24 hour window and must not be touched
	want := []string{never.StaffUrl.String, stale.StaffUrl.String}
	if diff := cmp.Diff(want, fetcher.urls); diff != "" {
		t.Fatal(diff)
	}

	after, err := svc.qry.GetProgram(context.Background(), fresh.ID)
	require.NoError(t, err)
	require.Equal(t, testNow.Add(-10*time.Hour).Unix(), after.LastVerifiedAt.Int64)
}

func TestVerifyProgramsSkipsDeadPeriod(t *testing.T) {
	fetcher := &fakeFetcher{}
	// midsummer wednesday, deep inside the dead period
	deadDay := time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC)
	svc, _, cleanup := setupScouts(t, Options{
		Fetcher:   fetcher,
		Extractor: &fakeExtractor{},
		Now:       func() time.Time { return deadDay },
	})
	defer cleanup()

	seedProgram(t, svc, "georgia", "https://georgiadogs.com/staff")

	result, err := svc.VerifyPrograms(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, 0, result.Verified)
	require.Contains(t, result.Message, "Skipping scrape - Dead Period")
	require.Empty(t, fetcher.urls)
}

func TestVerifyProgramsNoneDue(t *testing.T) {
	svc, _, cleanup := setupScouts(t, Options{Fetcher: &fakeFetcher{}, Extractor: &fakeExtractor{}})
	defer cleanup()

	result, err := svc.VerifyPrograms(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Equal(t, "No Tier 2 programs need verification", result.Message)
	require.Equal(t, 0, result.Verified)
}

func TestVerifyProgramsFetchFailureKeepsProgramDue(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connect: connection refused")}
	svc, _, cleanup := setupScouts(t, Options{Fetcher: fetcher, Extractor: &fakeExtractor{}})
	defer cleanup()

	program := seedProgram(t, svc, "michigan", "https://mgoblue.com/staff")
	staleAt := testNow.Add(-30 * time.Hour)
	setVerifiedAt(t, svc, program.ID, staleAt)

	result, err := svc.VerifyPrograms(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, 0, result.Verified)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "michigan: ")
	require.Contains(t, result.Errors[0], "connection refused")

	// the failed program keeps its old timestamp and stays eligible
	after, err := svc.qry.GetProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Equal(t, staleAt.Unix(), after.LastVerifiedAt.Int64)
}

func TestVerifyProgramsAdjustsThresholdForPeriod(t *testing.T) {
	// early signing period, multiplier x4: tier 2's 72 hours drops to 18
	signingDay := time.Date(2026, time.December, 18, 10, 0, 0, 0, time.UTC)
	svc, _, cleanup := setupScouts(t, Options{
		Fetcher:   &fakeFetcher{},
		Extractor: &fakeExtractor{},
		Now:       func() time.Time { return signingDay },
	})
	defer cleanup()

	result, err := svc.VerifyPrograms(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Equal(t, 18, result.AdjustedThresholdHours)
	require.Equal(t, "Early Signing Period", result.Period.Name)
}

func TestVerifyProgramRewritesSeasonalUrl(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _, cleanup := setupScouts(t, Options{Fetcher: fetcher, Extractor: &fakeExtractor{}})
	defer cleanup()

	program := seedProgram(t, svc, "clemson", "https://clemsontigers.com/sports/football/roster/season/2024-25")

	_, err := svc.VerifySingleProgram(context.Background(), program.ID)
	require.NoError(t, err)

	// february 2026 already belongs to the 2026-27 season
	wantUrl := "https://clemsontigers.com/sports/football/roster/season/2026-27"
	require.Equal(t, []string{wantUrl}, fetcher.urls)

	after, err := svc.qry.GetProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Equal(t, wantUrl, after.StaffUrl.String)
}

func TestVerifySingleProgramUnknown(t *testing.T) {
	svc, _, cleanup := setupScouts(t, Options{Fetcher: &fakeFetcher{}, Extractor: &fakeExtractor{}})
	defer cleanup()

	_, err := svc.VerifySingleProgram(context.Background(), 9999)
	require.ErrorContains(t, err, "program not found")
}

func TestVerifySingleProgramRequiresStaffUrl(t *testing.T) {
	svc, _, cleanup := setupScouts(t, Options{Fetcher: &fakeFetcher{}, Extractor: &fakeExtractor{}})
	defer cleanup()

	program := seedProgram(t, svc, "ucla", "")

	_, err := svc.VerifySingleProgram(context.Background(), program.ID)
	require.ErrorContains(t, err, "no staff URL configured")
}

func TestResolveMissingUrls(t *testing.T) {
	resolver := &fakeResolver{byBase: map[string]*urlresolver.Resolved{
		"https://baylor.example.com": {
			Url:     "https://baylor.example.com/sports/football/coaches",
			Pattern: "/sports/football/coaches",
		},
	}}
	svc, _, cleanup := setupScouts(t, Options{
		Fetcher:   &fakeFetcher{},
		Extractor: &fakeExtractor{},
		Resolver:  resolver,
	})
	defer cleanup()

	found := seedProgram(t, svc, "baylor", "")
	missed := seedProgram(t, svc, "tcu", "")

	results, err := svc.ResolveMissingUrls(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "https://baylor.example.com/sports/football/coaches", results[0].Resolved)
	require.Equal(t, "could not auto-discover staff URL", results[1].Error)

	after, err := svc.qry.GetProgram(context.Background(), found.ID)
	require.NoError(t, err)
	require.Equal(t, "https://baylor.example.com/sports/football/coaches", after.StaffUrl.String)

	// no url persisted, so the program comes back on the next pass
	stillMissing, err := svc.qry.GetProgram(context.Background(), missed.ID)
	require.NoError(t, err)
	require.False(t, stillMissing.StaffUrl.Valid)
}

func TestRefreshSeasonalUrls(t *testing.T) {
	svc, _, cleanup := setupScouts(t, Options{Fetcher: &fakeFetcher{}, Extractor: &fakeExtractor{}})
	defer cleanup()

	outdated := seedProgram(t, svc, "auburn", "https://auburntigers.com/staff/2024-25")
	current := seedProgram(t, svc, "lsu", "https://lsusports.net/staff/2026-27")

	updates, err := svc.RefreshSeasonalUrls(context.Background())
	require.NoError(t, err)
	require.Len(t, updates, 1)
	require.Equal(t, "auburn", updates[0].Program)
	require.Equal(t, "https://auburntigers.com/staff/2024-25", updates[0].OldUrl)
	require.Equal(t, "https://auburntigers.com/staff/2026-27", updates[0].NewUrl)

	after, err := svc.qry.GetProgram(context.Background(), outdated.ID)
	require.NoError(t, err)
	require.Equal(t, "https://auburntigers.com/staff/2026-27", after.StaffUrl.String)

	untouched, err := svc.qry.GetProgram(context.Background(), current.ID)
	require.NoError(t, err)
	require.Equal(t, "https://lsusports.net/staff/2026-27", untouched.StaffUrl.String)
}

func TestStatusReport(t *testing.T) {
	svc, _, cleanup := setupScouts(t, Options{Fetcher: &fakeFetcher{}, Extractor: &fakeExtractor{}})
	defer cleanup()

	today := seedProgram(t, svc, "iowa", "https://hawkeyesports.com/staff")
	old := seedProgram(t, svc, "wisconsin", "https://uwbadgers.com/staff")
	seedProgram(t, svc, "nebraska", "https://huskers.com/staff")
	setVerifiedAt(t, svc, today.ID, testNow.Add(-2*time.Hour))
	setVerifiedAt(t, svc, old.ID, testNow.Add(-8*24*time.Hour))

	require.NoError(t, svc.logStaffChange(context.Background(), staffChange{
		coachID:     1,
		coachName:   "Phil Parker",
		changeType:  ChangeDeparture,
		fromTitle:   "Defensive Coordinator",
	}))

	report, err := svc.Status(context.Background())
	require.NoError(t, err)

	require.Equal(t, "2026-27", report.RecruitingCalendar.Season)
	require.Equal(t, "Quiet Period", report.RecruitingCalendar.CurrentPeriod)
	require.Equal(t, 1.0, report.RecruitingCalendar.ScrapeMultiplier)

	require.EqualValues(t, 3, report.ProgramStats.Total)
	require.EqualValues(t, 1, report.ProgramStats.VerifiedToday)
	require.EqualValues(t, 1, report.ProgramStats.VerifiedThisWeek)
	require.EqualValues(t, 2, report.ProgramStats.NeedsVerification)

	require.Len(t, report.RecentStaffChanges, 1)
	require.Equal(t, "Phil Parker", report.RecentStaffChanges[0].CoachName)
	require.Equal(t, ChangeDeparture, report.RecentStaffChanges[0].ChangeType)
	require.Equal(t, testNow.Format(time.RFC3339), report.Timestamp)
}
