package recruiting

import (
	"fmt"
	"math"
	"sort"
	"time"
)

type Activity string

const (
	ActivityPeak   Activity = "peak"
	ActivityActive Activity = "active"
	ActivityQuiet  Activity = "quiet"
	ActivityDead   Activity = "dead"
)

// ActivityLevel buckets a scrape multiplier for dashboards,
// it is display-only and never drives control flow.
func ActivityLevel(multiplier float64) Activity {
	switch {
	case multiplier >= 3:
		return ActivityPeak
	case multiplier >= 1.5:
		return ActivityActive
	case multiplier >= 0.5:
		return ActivityQuiet
	default:
		return ActivityDead
	}
}

type Status struct {
	Period    string   `json:"period"`
	Activity  Activity `json:"activity"`
	NextEvent string   `json:"nextEvent"`
}

// StatusFor summarizes the calendar state for a dashboard, including
// the next significant upcoming event.
func StatusFor(date time.Time, w Windows) Status {
	info := PeriodFor(date, w)

	type event struct {
		start time.Time
		label string
	}
	var events []event
	for _, r := range w.SpringEvaluation {
		events = append(events, event{r.Start, "Spring Evaluation"})
	}
	for _, r := range w.OfficialVisit {
		events = append(events, event{r.Start, "Official Visit Season"})
	}
	for _, r := range w.EarlySigning {
		events = append(events, event{r.Start, "Early Signing Period"})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].start.Before(events[j].start)
	})

	nextEvent := "Normal operations"
	for _, e := range events {
		if date.Before(e.start) {
			daysUntil := int(math.Ceil(e.start.Sub(date).Hours() / 24))
			nextEvent = fmt.Sprintf("%s in %d days", e.label, daysUntil)
			break
		}
	}

	return Status{
		Period:    info.Name,
		Activity:  ActivityLevel(info.ScrapeMultiplier),
		NextEvent: nextEvent,
	}
}
