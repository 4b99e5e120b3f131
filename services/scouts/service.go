// Package scouts keeps the coach directory fresh: it periodically
// fetches each monitored program's staff page, extracts coach records
// from the html and reconciles them against the stored roster.
package scouts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"hsportal-backend/lib/llmextract"
	"hsportal-backend/lib/recruiting"
	"hsportal-backend/lib/scrapers/staffpage"
	"hsportal-backend/lib/urlresolver"
	"hsportal-backend/services/scouts/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/scouts")

// Source tags every row this worker writes.
const Source = "robot_scouts"

// base re-verification interval per priority tier, in hours
var tierThresholdHours = map[int64]int{
	1: 24,  // daily
	2: 72,  // every 3 days
	3: 168, // weekly
}

const defaultPoliteDelay = time.Second * 2

type UrlResolver interface {
	Resolve(ctx context.Context, baseUrl, knownUrl string) (*urlresolver.Resolved, error)
}

type PageValidator interface {
	Validate(ctx context.Context, url string) staffpage.Validation
}

type Options struct {
	Fetcher   staffpage.Fetcher
	Extractor llmextract.Extractor
	Resolver  UrlResolver
	Validator PageValidator
	// calendar boundaries, DefaultWindows when zero
	Windows *recruiting.Windows
	// delay between programs within one batch, stays polite to
	// source sites. default 2s
	PoliteDelay time.Duration
	// test seam for the clock
	Now func() time.Time
}

type Service struct {
	db        *sql.DB
	qry       *db.Queries
	fetcher   staffpage.Fetcher
	extractor llmextract.Extractor
	resolver  UrlResolver
	validator PageValidator
	windows   recruiting.Windows
	match     MatchStrategy
	delay     time.Duration
	now       func() time.Time
}

func NewService(database *sql.DB, opts Options) Service {
	windows := recruiting.DefaultWindows()
	if opts.Windows != nil {
		windows = *opts.Windows
	}
	delay := opts.PoliteDelay
	if delay == 0 {
		delay = defaultPoliteDelay
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return Service{
		db:        database,
		qry:       db.New(database),
		fetcher:   opts.Fetcher,
		extractor: opts.Extractor,
		resolver:  opts.Resolver,
		validator: opts.Validator,
		windows:   windows,
		match:     NameKeyStrategy{},
		delay:     delay,
		now:       now,
	}
}

type ProgramChanges struct {
	Program string `json:"program"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Updated int    `json:"updated"`
}

type BatchResult struct {
	Message                string                `json:"message,omitempty"`
	Verified               int                   `json:"verified"`
	Changes                []ProgramChanges      `json:"changes"`
	Errors                 []string              `json:"errors"`
	Period                 recruiting.PeriodInfo `json:"period"`
	AdjustedThresholdHours int                   `json:"adjustedThresholdHours,omitempty"`
}

// VerifyPrograms runs the verification pipeline over up to `limit` due
// programs in a priority tier. A single program's failure never aborts
// the batch, it becomes an entry in Errors.
func (s Service) VerifyPrograms(ctx context.Context, tier, limit int64) (BatchResult, error) {
	ctx, span := tracer.Start(ctx, "VerifyPrograms")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("tier", tier),
		attribute.Int64("limit", limit),
	)

	now := s.now()
	period := recruiting.PeriodFor(now, s.windows)

	if recruiting.ShouldSkipScraping(period) {
		span.AddEvent("skipping batch, deep dead period")
		return BatchResult{
			Message:  fmt.Sprintf("Skipping scrape - %s (%s)", period.Name, period.Description),
			Verified: 0,
			Changes:  []ProgramChanges{},
			Errors:   []string{},
			Period:   period,
		}, nil
	}

	baseHours, ok := tierThresholdHours[tier]
	if !ok {
		baseHours = tierThresholdHours[1]
	}
	thresholdHours := recruiting.AdjustedIntervalHours(baseHours, period)
	cutoff := now.Add(-time.Duration(thresholdHours) * time.Hour)

	programs, err := s.qry.GetDuePrograms(ctx, db.GetDueProgramsParams{
		PriorityTier:   tier,
		LastVerifiedAt: sql.NullInt64{Int64: cutoff.Unix(), Valid: true},
		Limit:          limit,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return BatchResult{}, fmt.Errorf("fetch due programs: %w", err)
	}

	result := BatchResult{
		Changes:                []ProgramChanges{},
		Errors:                 []string{},
		Period:                 period,
		AdjustedThresholdHours: thresholdHours,
	}

	if len(programs) == 0 {
		result.Message = fmt.Sprintf("No Tier %d programs need verification", tier)
		return result, nil
	}

	for i, program := range programs {
		counts, err := s.verifyProgramStaff(ctx, program)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", program.Name, err))
		} else {
			result.Verified++
			if !counts.IsZero() {
				result.Changes = append(result.Changes, ProgramChanges{
					Program: program.Name,
					Added:   counts.Added,
					Removed: counts.Removed,
					Updated: counts.Updated,
				})
			}
		}

		if i < len(programs)-1 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}

	return result, nil
}

// VerifySingleProgram bypasses tier/threshold selection entirely, for
// manual re-checks.
func (s Service) VerifySingleProgram(ctx context.Context, programID int64) (ProgramChanges, error) {
	ctx, span := tracer.Start(ctx, "VerifySingleProgram")
	defer span.End()
	span.SetAttributes(attribute.Int64("program_id", programID))

	program, err := s.qry.GetProgram(ctx, programID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ProgramChanges{}, fmt.Errorf("program not found: %d", programID)
	}

	counts, err := s.verifyProgramStaff(ctx, program)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ProgramChanges{}, err
	}

	return ProgramChanges{
		Program: program.Name,
		Added:   counts.Added,
		Removed: counts.Removed,
		Updated: counts.Updated,
	}, nil
}

// verifyProgramStaff runs the resolve -> fetch -> extract -> reconcile
// -> record pipeline for one program. A fetch failure aborts before any
// timestamp is touched, so the program stays eligible for immediate
// re-selection on the next run.
func (s Service) verifyProgramStaff(ctx context.Context, program db.Program) (ChangeCounts, error) {
	ctx, span := tracer.Start(ctx, "verifyProgramStaff")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("program_id", program.ID),
		attribute.String("program", program.Name),
	)

	if !program.StaffUrl.Valid || program.StaffUrl.String == "" {
		return ChangeCounts{}, fmt.Errorf("no staff URL configured")
	}

	now := s.now()

	staffUrl := program.StaffUrl.String
	if urlresolver.NeedsSeasonUpdate(staffUrl, now) {
		staffUrl = urlresolver.UpdateSeason(staffUrl, now)
		err := s.qry.UpdateProgramStaffUrl(ctx, db.UpdateProgramStaffUrlParams{
			StaffUrl: sql.NullString{String: staffUrl, Valid: true},
			ID:       program.ID,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return ChangeCounts{}, fmt.Errorf("update seasonal url: %w", err)
		}
		slog.InfoContext(ctx, "updated seasonal staff url",
			"program", program.Name,
			"url", staffUrl,
		)
	}

	html, err := s.fetcher.Fetch(ctx, staffUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return ChangeCounts{}, err
	}

	extracted, err := s.extractor.Extract(ctx, html, program.Name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		return ChangeCounts{}, fmt.Errorf("extract coaches: %w", err)
	}

	existing, err := s.qry.GetCoachesByProgram(ctx, program.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ChangeCounts{}, fmt.Errorf("load stored coaches: %w", err)
	}

	// an empty extraction against a populated roster deactivates
	// everyone below; that may be real or an extractor miss, so leave
	// an audit trail either way
	if len(extracted) == 0 && activeCount(existing) > 0 {
		slog.WarnContext(ctx, "extraction returned no coaches for a populated roster, entire staff will be marked inactive",
			"program", program.Name,
			"stored_active", activeCount(existing),
		)
	}

	counts, err := s.syncCoaches(ctx, program.ID, extracted, existing)
	if err != nil {
		return counts, err
	}

	err = s.qry.StampProgramVerified(ctx, db.StampProgramVerifiedParams{
		LastVerifiedAt:     sql.NullInt64{Int64: now.Unix(), Valid: true},
		VerificationSource: Source,
		StaffLastScrapedAt: sql.NullInt64{Int64: now.Unix(), Valid: true},
		ID:                 program.ID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return counts, fmt.Errorf("stamp verification: %w", err)
	}

	return counts, nil
}

func activeCount(coaches []db.Coach) int {
	n := 0
	for _, c := range coaches {
		if c.IsActive == 1 {
			n++
		}
	}
	return n
}
