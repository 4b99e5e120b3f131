package scouts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hsportal-backend/lib/urlresolver"
	"hsportal-backend/services/scouts/db"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const delayBetweenResolves = time.Second

type ResolveResult struct {
	Program              string `json:"program"`
	Resolved             string `json:"resolved,omitempty"`
	Pattern              string `json:"pattern,omitempty"`
	RequiresSeasonUpdate bool   `json:"requiresSeasonUpdate,omitempty"`
	Error                string `json:"error,omitempty"`
}

// ResolveProgramUrl attempts to discover the staff page for a single
// program and persists the url on success.
func (s Service) ResolveProgramUrl(ctx context.Context, programID int64) (ResolveResult, error) {
	ctx, span := tracer.Start(ctx, "ResolveProgramUrl")
	defer span.End()
	span.SetAttributes(attribute.Int64("program_id", programID))

	program, err := s.qry.GetProgram(ctx, programID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ResolveResult{}, fmt.Errorf("program not found: %d", programID)
	}

	return s.resolveAndPersist(ctx, program)
}

// ResolveMissingUrls discovers staff urls for active programs that
// have none yet. A failed discovery leaves staff_url unset so the
// program is picked up again on a later pass.
func (s Service) ResolveMissingUrls(ctx context.Context, limit int64) ([]ResolveResult, error) {
	ctx, span := tracer.Start(ctx, "ResolveMissingUrls")
	defer span.End()

	programs, err := s.qry.GetProgramsMissingStaffUrl(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch programs missing staff url: %w", err)
	}

	results := make([]ResolveResult, 0, len(programs))
	for i, program := range programs {
		result, err := s.resolveAndPersist(ctx, program)
		if err != nil {
			result = ResolveResult{Program: program.Name, Error: err.Error()}
		}
		results = append(results, result)

		if i < len(programs)-1 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(delayBetweenResolves):
			}
		}
	}

	return results, nil
}

func (s Service) resolveAndPersist(ctx context.Context, program db.Program) (ResolveResult, error) {
	baseUrl := program.AthleticsUrl
	if baseUrl == "" {
		// last-ditch guess at the athletics domain
		baseUrl = fmt.Sprintf("https://%s.com", strings.ReplaceAll(strings.ToLower(program.Name), " ", ""))
	}

	resolved, err := s.resolver.Resolve(ctx, baseUrl, program.StaffUrl.String)
	if err != nil {
		return ResolveResult{}, err
	}
	if resolved == nil {
		return ResolveResult{
			Program: program.Name,
			Error:   "could not auto-discover staff URL",
		}, nil
	}

	err = s.qry.UpdateProgramStaffUrl(ctx, db.UpdateProgramStaffUrlParams{
		StaffUrl: sql.NullString{String: resolved.Url, Valid: true},
		ID:       program.ID,
	})
	if err != nil {
		return ResolveResult{}, fmt.Errorf("persist staff url: %w", err)
	}

	slog.InfoContext(ctx, "resolved staff url",
		"program", program.Name,
		"url", resolved.Url,
		"pattern", resolved.Pattern,
	)

	return ResolveResult{
		Program:              program.Name,
		Resolved:             resolved.Url,
		Pattern:              resolved.Pattern,
		RequiresSeasonUpdate: resolved.RequiresSeasonUpdate,
	}, nil
}

type SeasonUpdate struct {
	Program string `json:"program"`
	OldUrl  string `json:"oldUrl"`
	NewUrl  string `json:"newUrl"`
}

// RefreshSeasonalUrls rewrites every stored staff url that still
// carries a previous season's token.
func (s Service) RefreshSeasonalUrls(ctx context.Context) ([]SeasonUpdate, error) {
	ctx, span := tracer.Start(ctx, "RefreshSeasonalUrls")
	defer span.End()

	programs, err := s.qry.GetProgramsWithStaffUrl(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch programs: %w", err)
	}

	now := s.now()
	updates := []SeasonUpdate{}
	for _, program := range programs {
		if !urlresolver.NeedsSeasonUpdate(program.StaffUrl.String, now) {
			continue
		}
		newUrl := urlresolver.UpdateSeason(program.StaffUrl.String, now)

		err := s.qry.UpdateProgramStaffUrl(ctx, db.UpdateProgramStaffUrlParams{
			StaffUrl: sql.NullString{String: newUrl, Valid: true},
			ID:       program.ID,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return updates, fmt.Errorf("persist staff url: %w", err)
		}

		updates = append(updates, SeasonUpdate{
			Program: program.Name,
			OldUrl:  program.StaffUrl.String,
			NewUrl:  newUrl,
		})
	}

	span.SetAttributes(attribute.Int("updated", len(updates)))
	return updates, nil
}
