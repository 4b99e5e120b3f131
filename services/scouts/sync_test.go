package scouts

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"hsportal-backend/lib/llmextract"
	"hsportal-backend/lib/testutil"
	"hsportal-backend/lib/urlresolver"
	"hsportal-backend/services/scouts/db"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

type fakeFetcher struct {
	html string
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return "", f.err
	}
	if f.html != "" {
		return f.html, nil
	}
	return "<html><body>Staff Directory</body></html>", nil
}

type fakeExtractor struct {
	coaches []llmextract.ExtractedCoach
	err     error
}

func (f *fakeExtractor) Extract(ctx context.Context, html, programName string) ([]llmextract.ExtractedCoach, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.coaches, nil
}

type fakeResolver struct {
	byBase map[string]*urlresolver.Resolved
	err    error
}

func (f *fakeResolver) Resolve(ctx context.Context, baseUrl, knownUrl string) (*urlresolver.Resolved, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byBase[baseUrl], nil
}

func setupScouts(t *testing.T, opts Options) (Service, *sql.DB, func()) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "scouts",
		DbSchema: db.Schema,
	})
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	if opts.PoliteDelay == 0 {
		opts.PoliteDelay = time.Millisecond
	}
	return NewService(result.DB, opts), result.DB, cleanup
}

func seedProgram(t *testing.T, svc Service, name, staffUrl string) db.Program {
	program, err := svc.qry.CreateProgram(context.Background(), db.CreateProgramParams{
		Name:         name,
		AthleticsUrl: "https://" + name + ".example.com",
		StaffUrl:     sql.NullString{String: staffUrl, Valid: staffUrl != ""},
		IsActive:     1,
		PriorityTier: 1,
	})
	require.NoError(t, err)
	return program
}

func seedCoach(t *testing.T, svc Service, programID int64, first, last, title string) db.Coach {
	coach, err := svc.qry.CreateCoach(context.Background(), db.CreateCoachParams{
		ProgramID:          programID,
		FirstName:          first,
		LastName:           last,
		Title:              title,
		PositionGroup:      "offense",
		VerificationSource: Source,
	})
	require.NoError(t, err)
	return coach
}

func allChanges(t *testing.T, svc Service) []db.StaffChange {
	changes, err := svc.qry.GetRecentStaffChanges(context.Background(), 100)
	require.NoError(t, err)
	return changes
}

func TestSyncHiresNewCoaches(t *testing.T) {
	extractor := &fakeExtractor{coaches: []llmextract.ExtractedCoach{
		{FirstName: "Marcus", LastName: "Freeman", Title: "Head Coach", PositionGroup: "head"},
		{FirstName: "Al", LastName: "Golden", Title: "Defensive Coordinator", PositionGroup: "defense", IsRecruitingCoordinator: true},
	}}
	svc, _, cleanup := setupScouts(t, Options{Fetcher: &fakeFetcher{}, Extractor: extractor})
	defer cleanup()

	program := seedProgram(t, svc, "notre-dame", "https://und.com/staff")

	changes, err := svc.VerifySingleProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Equal(t, 2, changes.Added)
	require.Equal(t, 0, changes.Removed)
	require.Equal(t, 0, changes.Updated)

	coaches, err := svc.qry.GetCoachesByProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Len(t, coaches, 2)
	for _, c := range coaches {
		require.EqualValues(t, 1, c.IsActive)
		require.Equal(t, Source, c.VerificationSource)
	}

	logged := allChanges(t, svc)
	require.Len(t, logged, 2)
	for _, change := range logged {
		require.Equal(t, ChangeHire, change.ChangeType)
		require.True(t, change.ToTitle.Valid)
		require.False(t, change.FromTitle.Valid)
		require.Equal(t, "2026-02-10", change.AnnouncedDate)
		require.Equal(t, Source, change.Source)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	extractor := &fakeExtractor{coaches: []llmextract.ExtractedCoach{
		{FirstName: "Kalen", LastName: "DeBoer", Title: "Head Coach", PositionGroup: "head"},
	}}
	svc, _, cleanup := setupScouts(t, Options{Fetcher: &fakeFetcher{}, Extractor: extractor})
	defer cleanup()

	program := seedProgram(t, svc, "alabama", "https://rolltide.com/staff")

	first, err := svc.VerifySingleProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Equal(t, 1, first.Added)

	second, err := svc.VerifySingleProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Equal(t, 0, second.Added)
	require.Equal(t, 0, second.Removed)
	require.Equal(t, 0, second.Updated)

	require.Len(t, allChanges(t, svc), 1)
}

func TestSyncTitleChange(t *testing.T) {
	extractor := &fakeExtractor{coaches: []llmextract.ExtractedCoach{
		{FirstName: "Jim", LastName: "Knowles", Title: "Head Coach", PositionGroup: "head"},
	}}
	svc, _, cleanup := setupScouts(t, Options{Fetcher: &fakeFetcher{}, Extractor: extractor})
	defer cleanup()

	program := seedProgram(t, svc, "penn-state", "https://gopsusports.com/staff")
	seedCoach(t, svc, program.ID, "Jim", "Knowles", "Defensive Coordinator")

	changes, err := svc.VerifySingleProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Equal(t, 0, changes.Added)
	require.Equal(t, 0, changes.Removed)
	require.Equal(t, 1, changes.Updated)

	coaches, err := svc.qry.GetCoachesByProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Len(t, coaches, 1)
	require.Equal(t, "Head Coach", coaches[0].Title)
	require.EqualValues(t, 1, coaches[0].IsActive)

	logged := allChanges(t, svc)
	require.Len(t, logged, 1)
	require.Equal(t, ChangeTitleChange, logged[0].ChangeType)
	require.Equal(t, "Defensive Coordinator", logged[0].FromTitle.String)
	require.Equal(t, "Head Coach", logged[0].ToTitle.String)
}

func TestSyncDeparture(t *testing.T) {
	extractor := &fakeExtractor{coaches: []llmextract.ExtractedCoach{
		{FirstName: "Dan", LastName: "Lanning", Title: "Head Coach", PositionGroup: "head"},
	}}
	svc, _, cleanup := setupScouts(t, Options{Fetcher: &fakeFetcher{}, Extractor: extractor})
	defer cleanup()

	program := seedProgram(t, svc, "oregon", "https://goducks.com/staff")
	seedCoach(t, svc, program.ID, "Dan", "Lanning", "Head Coach")
	departed := seedCoach(t, svc, program.ID, "Will", "Stein", "Offensive Coordinator")

	changes, err := svc.VerifySingleProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Equal(t, 0, changes.Added)
	require.Equal(t, 1, changes.Removed)
	require.Equal(t, 0, changes.Updated)

	coaches, err := svc.qry.GetCoachesByProgram(context.Background(), program.ID)
	require.NoError(t, err)
	for _, c := range coaches {
		if c.ID == departed.ID {
			require.EqualValues(t, 0, c.IsActive)
		} else {
			require.EqualValues(t, 1, c.IsActive)
		}
	}

	logged := allChanges(t, svc)
	require.Len(t, logged, 1)
	require.Equal(t, ChangeDeparture, logged[0].ChangeType)
	require.Equal(t, "Will Stein", logged[0].CoachName)
	require.Equal(t, "Offensive Coordinator", logged[0].FromTitle.String)
	require.False(t, logged[0].ToTitle.Valid)
}

func TestSyncReactivationReadsAsHire(t *testing.T) {
	extractor := &fakeExtractor{coaches: []llmextract.ExtractedCoach{
		{FirstName: "Mike", LastName: "Elko", Title: "Head Coach", PositionGroup: "head"},
	}}
	svc, _, cleanup := setupScouts(t, Options{Fetcher: &fakeFetcher{}, Extractor: extractor})
	defer cleanup()

	program := seedProgram(t, svc, "texas-am", "https://12thman.com/staff")
	coach := seedCoach(t, svc, program.ID, "Mike", "Elko", "Head Coach")
	require.NoError(t, svc.qry.DeactivateCoach(context.Background(), coach.ID))

	changes, err := svc.VerifySingleProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Equal(t, 1, changes.Updated)

	coaches, err := svc.qry.GetCoachesByProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Len(t, coaches, 1)
	require.EqualValues(t, 1, coaches[0].IsActive)

	logged := allChanges(t, svc)
	require.Len(t, logged, 1)
	require.Equal(t, ChangeHire, logged[0].ChangeType)
	require.Equal(t, "Head Coach", logged[0].ToTitle.String)
}

func TestSyncEmptyExtractionDeactivatesRoster(t *testing.T) {
	svc, _, cleanup := setupScouts(t, Options{Fetcher: &fakeFetcher{}, Extractor: &fakeExtractor{}})
	defer cleanup()

	program := seedProgram(t, svc, "florida", "https://floridagators.com/staff")
	seedCoach(t, svc, program.ID, "Billy", "Napier", "Head Coach")
	seedCoach(t, svc, program.ID, "Austin", "Armstrong", "Defensive Coordinator")

	changes, err := svc.VerifySingleProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Equal(t, 2, changes.Removed)

	coaches, err := svc.qry.GetCoachesByProgram(context.Background(), program.ID)
	require.NoError(t, err)
	for _, c := range coaches {
		require.EqualValues(t, 0, c.IsActive)
	}
}

func TestSyncNameMatchIsCaseInsensitive(t *testing.T) {
	extractor := &fakeExtractor{coaches: []llmextract.ExtractedCoach{
		{FirstName: "RYAN", LastName: "Day", Title: "Head Coach", PositionGroup: "head"},
	}}
	svc, _, cleanup := setupScouts(t, Options{Fetcher: &fakeFetcher{}, Extractor: extractor})
	defer cleanup()

	program := seedProgram(t, svc, "ohio-state", "https://ohiostatebuckeyes.com/staff")
	seedCoach(t, svc, program.ID, "Ryan", "DAY", "Head Coach")

	changes, err := svc.VerifySingleProgram(context.Background(), program.ID)
	require.NoError(t, err)
	require.Equal(t, 0, changes.Added)
	require.Equal(t, 0, changes.Removed)
	require.Equal(t, 0, changes.Updated)
	require.Empty(t, allChanges(t, svc))
}
