package scouts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"hsportal-backend/lib/llmextract"
	"hsportal-backend/services/scouts/db"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	ChangeHire        = "hire"
	ChangeDeparture   = "departure"
	ChangePromotion   = "promotion"
	ChangeTitleChange = "title_change"
)

// MatchStrategy decides when an extracted coach and a stored coach are
// the same person. The default keys on normalized names because the
// extractor has no stable identifier to offer; a stronger key can be
// swapped in here without touching the diff itself.
type MatchStrategy interface {
	Key(firstName, lastName string) string
}

type NameKeyStrategy struct{}

func (NameKeyStrategy) Key(firstName, lastName string) string {
	return fmt.Sprintf("%s-%s", strings.ToLower(firstName), strings.ToLower(lastName))
}

type ChangeCounts struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Updated int `json:"updated"`
}

func (c ChangeCounts) IsZero() bool {
	return c.Added == 0 && c.Removed == 0 && c.Updated == 0
}

// two distinct people with very similar names at one program usually
// means the extractor spelled somebody differently this pass
const nearMissThreshold = 0.93

// syncCoaches diffs a freshly extracted coach list against the stored
// roster for one program. Stored coaches are never hard-deleted,
// absence from the extraction only flips them inactive so change
// history keeps its identity. Re-running the same extraction is a
// no-op.
func (s Service) syncCoaches(
	ctx context.Context,
	programID int64,
	extracted []llmextract.ExtractedCoach,
	existing []db.Coach,
) (ChangeCounts, error) {
	ctx, span := tracer.Start(ctx, "syncCoaches")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("program_id", programID),
		attribute.Int("extracted", len(extracted)),
		attribute.Int("existing", len(existing)),
	)

	var counts ChangeCounts
	now := s.now()

	existingByKey := make(map[string]db.Coach, len(existing))
	for _, c := range existing {
		existingByKey[s.match.Key(c.FirstName, c.LastName)] = c
	}

	extractedKeys := make(map[string]struct{}, len(extracted))

	for _, coach := range extracted {
		key := s.match.Key(coach.FirstName, coach.LastName)
		extractedKeys[key] = struct{}{}

		existingCoach, found := existingByKey[key]

		if !found {
			s.logNearMiss(ctx, key, existingByKey)

			created, err := s.qry.CreateCoach(ctx, db.CreateCoachParams{
				ProgramID:               programID,
				FirstName:               coach.FirstName,
				LastName:                coach.LastName,
				Title:                   coach.Title,
				PositionGroup:           coach.PositionGroup,
				IsRecruitingCoordinator: boolToInt(coach.IsRecruitingCoordinator),
				LastVerifiedAt:          sql.NullInt64{Int64: now.Unix(), Valid: true},
				VerificationSource:      Source,
			})
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return counts, fmt.Errorf("insert coach: %w", err)
			}

			err = s.logStaffChange(ctx, staffChange{
				coachID:     created.ID,
				coachName:   fmt.Sprintf("%s %s", coach.FirstName, coach.LastName),
				changeType:  ChangeHire,
				toProgramID: programID,
				toTitle:     coach.Title,
			})
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return counts, err
			}

			counts.Added++
			continue
		}

		if existingCoach.Title != coach.Title || existingCoach.IsActive == 0 {
			wasInactive := existingCoach.IsActive == 0

			err := s.qry.UpdateCoach(ctx, db.UpdateCoachParams{
				Title:                   coach.Title,
				PositionGroup:           coach.PositionGroup,
				IsRecruitingCoordinator: boolToInt(coach.IsRecruitingCoordinator),
				LastVerifiedAt:          sql.NullInt64{Int64: now.Unix(), Valid: true},
				VerificationSource:      Source,
				ID:                      existingCoach.ID,
			})
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return counts, fmt.Errorf("update coach: %w", err)
			}

			if wasInactive {
				// a reactivation reads as a fresh hire, even when the
				// title matches what they had before going inactive
				err = s.logStaffChange(ctx, staffChange{
					coachID:     existingCoach.ID,
					coachName:   fmt.Sprintf("%s %s", coach.FirstName, coach.LastName),
					changeType:  ChangeHire,
					toProgramID: programID,
					toTitle:     coach.Title,
				})
			} else {
				err = s.logStaffChange(ctx, staffChange{
					coachID:       existingCoach.ID,
					coachName:     fmt.Sprintf("%s %s", coach.FirstName, coach.LastName),
					changeType:    ChangeTitleChange,
					fromProgramID: programID,
					fromTitle:     existingCoach.Title,
					toProgramID:   programID,
					toTitle:       coach.Title,
				})
			}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return counts, err
			}

			counts.Updated++
		}
		// identical row: no mutation, no log entry
	}

	// everyone still active who failed to appear in the fresh
	// extraction has left the program
	for key, coach := range existingByKey {
		_, stillPresent := extractedKeys[key]
		if stillPresent || coach.IsActive == 0 {
			continue
		}

		err := s.qry.DeactivateCoach(ctx, coach.ID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return counts, fmt.Errorf("deactivate coach: %w", err)
		}

		err = s.logStaffChange(ctx, staffChange{
			coachID:       coach.ID,
			coachName:     fmt.Sprintf("%s %s", coach.FirstName, coach.LastName),
			changeType:    ChangeDeparture,
			fromProgramID: programID,
			fromTitle:     coach.Title,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return counts, err
		}

		counts.Removed++
	}

	return counts, nil
}

// logNearMiss flags an extracted name that is suspiciously close to a
// stored one. Diagnostic only, it never changes what the diff does.
func (s Service) logNearMiss(ctx context.Context, key string, existingByKey map[string]db.Coach) {
	for existingKey := range existingByKey {
		similarity := matchr.JaroWinkler(key, existingKey, false)
		if similarity >= nearMissThreshold {
			slog.WarnContext(
				ctx,
				"extracted coach closely matches an existing coach, possible rename or misspelling",
				"extracted", key,
				"existing", existingKey,
				"similarity", similarity,
			)
			return
		}
	}
}

type staffChange struct {
	coachID       int64
	coachName     string
	changeType    string
	fromProgramID int64
	fromTitle     string
	toProgramID   int64
	toTitle       string
}

func (s Service) logStaffChange(ctx context.Context, change staffChange) error {
	now := s.now()
	return s.qry.CreateStaffChange(ctx, db.CreateStaffChangeParams{
		CoachID:       sql.NullInt64{Int64: change.coachID, Valid: change.coachID != 0},
		CoachName:     change.coachName,
		ChangeType:    change.changeType,
		FromProgramID: sql.NullInt64{Int64: change.fromProgramID, Valid: change.fromProgramID != 0},
		FromTitle:     sql.NullString{String: change.fromTitle, Valid: change.fromTitle != ""},
		ToProgramID:   sql.NullInt64{Int64: change.toProgramID, Valid: change.toProgramID != 0},
		ToTitle:       sql.NullString{String: change.toTitle, Valid: change.toTitle != ""},
		AnnouncedDate: now.Format("2006-01-02"),
		Source:        Source,
		CreatedAt:     now.Unix(),
	})
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
