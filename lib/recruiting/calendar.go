// Package recruiting implements the college football recruiting calendar
// used to tune staff page scraping frequency by time of year.
//
// Class of 2027 timeline (2026 calendar year):
//   - Feb-Apr: Quiet Period (junior days)
//   - Apr 15 - May 23: Spring Evaluation Period (offers fly)
//   - May 24-27: Dead Period (short reset)
//   - June 1-22: Quiet Period (official visit season, peak activity)
//   - June 23 - July 31: Dead Period (5+ weeks quiet)
//   - August: Dead Period (with 48hr game-day exceptions)
//   - Sept 1+: Contact Period opens (unlimited communication)
//   - Dec 18-20: Early Signing Period
package recruiting

import (
	"math"
	"time"
)

type Period string

const (
	PeriodDead         Period = "dead"
	PeriodQuiet        Period = "quiet"
	PeriodEvaluation   Period = "evaluation"
	PeriodContact      Period = "contact"
	PeriodEarlySigning Period = "early_signing"
	PeriodPortalWindow Period = "portal_window"
)

type PeriodInfo struct {
	Period Period `json:"period"`
	Name   string `json:"name"`
	// 1 = normal, 0.5 = half, 2 = double
	ScrapeMultiplier float64 `json:"scrapeMultiplier"`
	Description      string  `json:"description"`
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) Contains(date time.Time) bool {
	return !date.Before(r.Start) && !date.After(r.End)
}

// Windows holds the year-specific calendar boundaries. The policy in
// PeriodFor is stable across years, only these dates change annually.
type Windows struct {
	Dead             []DateRange `json:"dead"`
	SpringEvaluation []DateRange `json:"spring_evaluation"`
	OfficialVisit    []DateRange `json:"official_visit"`
	EarlySigning     []DateRange `json:"early_signing"`
	Portal           []DateRange `json:"portal"`
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// DefaultWindows returns the 2026 calendar.
func DefaultWindows() Windows {
	return Windows{
		Dead: []DateRange{
			{Start: day(2026, time.May, 24), End: day(2026, time.May, 27)},     // short reset
			{Start: day(2026, time.June, 23), End: day(2026, time.July, 31)},   // big summer dead period
			{Start: day(2026, time.August, 1), End: day(2026, time.August, 31)}, // August dead (with exceptions)
		},
		SpringEvaluation: []DateRange{
			{Start: day(2026, time.April, 15), End: day(2026, time.May, 23)},
		},
		OfficialVisit: []DateRange{
			{Start: day(2026, time.June, 1), End: day(2026, time.June, 22)},
		},
		EarlySigning: []DateRange{
			{Start: day(2026, time.December, 18), End: day(2026, time.December, 20)},
		},
		Portal: []DateRange{
			{Start: day(2025, time.December, 9), End: day(2026, time.January, 15)}, // winter portal
			{Start: day(2026, time.April, 16), End: day(2026, time.April, 30)},     // spring portal
		},
	}
}

func anyContains(ranges []DateRange, date time.Time) bool {
	for _, r := range ranges {
		if r.Contains(date) {
			return true
		}
	}
	return false
}

// PeriodFor resolves the recruiting period for a date. Precedence:
// early signing > portal windows > dead periods (with the August
// game-day exception) > spring evaluation / official visits >
// September+ contact > default quiet.
func PeriodFor(date time.Time, w Windows) PeriodInfo {
	if anyContains(w.EarlySigning, date) {
		return PeriodInfo{
			Period:           PeriodEarlySigning,
			Name:             "Early Signing Period",
			ScrapeMultiplier: 4,
			Description:      "Commitments and flips happening hourly",
		}
	}

	if anyContains(w.Portal, date) {
		return PeriodInfo{
			Period:           PeriodPortalWindow,
			Name:             "Transfer Portal Window",
			ScrapeMultiplier: 2,
			Description:      "Staff changes and portal activity peak",
		}
	}

	if anyContains(w.Dead, date) {
		if date.Month() == time.August {
			dow := date.Weekday()
			if dow == time.Friday || dow == time.Saturday {
				return PeriodInfo{
					Period:           PeriodQuiet,
					Name:             "August Game Day Exception",
					ScrapeMultiplier: 1.5,
					Description:      "48-hour quiet period around home games",
				}
			}
		}
		return PeriodInfo{
			Period:           PeriodDead,
			Name:             "Dead Period",
			ScrapeMultiplier: 0.25,
			Description:      "No campus visits, minimal news expected",
		}
	}

	if anyContains(w.SpringEvaluation, date) {
		return PeriodInfo{
			Period:           PeriodEvaluation,
			Name:             "Spring Evaluation Period",
			ScrapeMultiplier: 2,
			Description:      "Coaches on the road, offers flying",
		}
	}
	if anyContains(w.OfficialVisit, date) {
		return PeriodInfo{
			Period:           PeriodQuiet,
			Name:             "Official Visit Season",
			ScrapeMultiplier: 3,
			Description:      "June visits = commitment waves",
		}
	}

	if date.Month() >= time.September {
		return PeriodInfo{
			Period:           PeriodContact,
			Name:             "Contact Period",
			ScrapeMultiplier: 1.5,
			Description:      "Unlimited coach-recruit communication",
		}
	}

	return PeriodInfo{
		Period:           PeriodQuiet,
		Name:             "Quiet Period",
		ScrapeMultiplier: 1,
		Description:      "Normal recruiting activity",
	}
}

// AdjustedIntervalHours shortens/lengthens a base re-verification
// interval: a higher multiplier means more frequent scraping.
func AdjustedIntervalHours(baseHours int, info PeriodInfo) int {
	return int(math.Round(float64(baseHours) / info.ScrapeMultiplier))
}

// ShouldSkipScraping is true only for the non-game-day portion of deep
// dead periods, where an entire verification batch is not worth running.
func ShouldSkipScraping(info PeriodInfo) bool {
	return info.Period == PeriodDead && info.ScrapeMultiplier < 0.5
}
