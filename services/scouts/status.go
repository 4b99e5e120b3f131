package scouts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hsportal-backend/lib/recruiting"
	"hsportal-backend/lib/urlresolver"

	"go.opentelemetry.io/otel/codes"
)

type CalendarStatus struct {
	Season           string              `json:"season"`
	CurrentPeriod    string              `json:"currentPeriod"`
	ActivityLevel    recruiting.Activity `json:"activityLevel"`
	NextEvent        string              `json:"nextEvent"`
	ScrapeMultiplier float64             `json:"scrapeMultiplier"`
	Description      string              `json:"description"`
}

type ProgramStats struct {
	Total             int64 `json:"total"`
	VerifiedToday     int64 `json:"verifiedToday"`
	VerifiedThisWeek  int64 `json:"verifiedThisWeek"`
	NeedsVerification int64 `json:"needsVerification"`
}

type RecentChange struct {
	ID            int64  `json:"id"`
	CoachName     string `json:"coach_name"`
	ChangeType    string `json:"change_type"`
	AnnouncedDate string `json:"announced_date"`
}

type StatusReport struct {
	RecruitingCalendar CalendarStatus `json:"recruitingCalendar"`
	ProgramStats       ProgramStats   `json:"programStats"`
	RecentStaffChanges []RecentChange `json:"recentStaffChanges"`
	Timestamp          string         `json:"timestamp"`
}

// Status is a reporting view over the same store, not part of the
// write path.
func (s Service) Status(ctx context.Context) (StatusReport, error) {
	ctx, span := tracer.Start(ctx, "Status")
	defer span.End()

	now := s.now()
	period := recruiting.PeriodFor(now, s.windows)
	calStatus := recruiting.StatusFor(now, s.windows)

	oneDayAgo := sql.NullInt64{Int64: now.Add(-24 * time.Hour).Unix(), Valid: true}
	oneWeekAgo := sql.NullInt64{Int64: now.Add(-7 * 24 * time.Hour).Unix(), Valid: true}

	total, err := s.qry.CountActivePrograms(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StatusReport{}, fmt.Errorf("count active programs: %w", err)
	}
	verifiedToday, err := s.qry.CountProgramsVerifiedSince(ctx, oneDayAgo)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StatusReport{}, fmt.Errorf("count verified today: %w", err)
	}
	verifiedThisWeek, err := s.qry.CountProgramsVerifiedSince(ctx, oneWeekAgo)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StatusReport{}, fmt.Errorf("count verified this week: %w", err)
	}
	needsVerification, err := s.qry.CountProgramsNeedingVerification(ctx, oneWeekAgo)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StatusReport{}, fmt.Errorf("count needing verification: %w", err)
	}

	recent, err := s.qry.GetRecentStaffChanges(ctx, 5)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StatusReport{}, fmt.Errorf("fetch recent staff changes: %w", err)
	}
	recentChanges := make([]RecentChange, len(recent))
	for i, change := range recent {
		recentChanges[i] = RecentChange{
			ID:            change.ID,
			CoachName:     change.CoachName,
			ChangeType:    change.ChangeType,
			AnnouncedDate: change.AnnouncedDate,
		}
	}

	return StatusReport{
		RecruitingCalendar: CalendarStatus{
			Season:           urlresolver.CurrentSeason(now),
			CurrentPeriod:    calStatus.Period,
			ActivityLevel:    calStatus.Activity,
			NextEvent:        calStatus.NextEvent,
			ScrapeMultiplier: period.ScrapeMultiplier,
			Description:      period.Description,
		},
		ProgramStats: ProgramStats{
			Total:             total,
			VerifiedToday:     verifiedToday,
			VerifiedThisWeek:  verifiedThisWeek,
			NeedsVerification: needsVerification,
		},
		RecentStaffChanges: recentChanges,
		Timestamp:          now.Format(time.RFC3339),
	}, nil
}
