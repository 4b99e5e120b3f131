// Package urlresolver locates live staff-roster pages on athletics sites
// and keeps season-specific URLs (e.g. "/coaches/2024-25") current.
package urlresolver

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"hsportal-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("urlresolver")

const seasonToken = "{season}"

var seasonRegex = regexp.MustCompile(`\d{4}-\d{2}`)

// CurrentSeason returns the academic-year season string ("2026-27").
// Recruiting in a given calendar year targets the upcoming fall season,
// so from February onward the season rolls forward; January still
// belongs to the previous season.
func CurrentSeason(now time.Time) string {
	year := now.Year()
	if now.Month() >= time.February {
		return fmt.Sprintf("%d-%02d", year, (year+1)%100)
	}
	return fmt.Sprintf("%d-%02d", year-1, year%100)
}

// UpdateSeason replaces any season-shaped substring in the url with the
// current season. It is a no-op when the url carries no season token.
func UpdateSeason(rawUrl string, now time.Time) string {
	if seasonRegex.MatchString(rawUrl) {
		return seasonRegex.ReplaceAllString(rawUrl, CurrentSeason(now))
	}
	return rawUrl
}

// NeedsSeasonUpdate reports whether the url embeds a season that
// differs from the current one.
func NeedsSeasonUpdate(rawUrl string, now time.Time) bool {
	match := seasonRegex.FindString(rawUrl)
	if match == "" {
		return false
	}
	return match != CurrentSeason(now)
}

var standardPatterns = []string{
	"/sports/football/coaches",
	"/sports/fb/coaches",
	"/staff-directory/football",
	"/staff-directory/sports/football",
}

var seasonalPatterns = []string{
	"/sports/football/coaches/" + seasonToken,
	"/sports/fb/coaches/" + seasonToken,
	"/sports/football/roster/" + seasonToken + "/coaches",
}

var alternativePatterns = []string{
	"/football/coaches",
	"/team/football/coaches",
	"/athletics/football/coaches",
}

type Resolved struct {
	Url                  string `json:"url"`
	Pattern              string `json:"pattern"`
	RequiresSeasonUpdate bool   `json:"requiresSeasonUpdate"`
}

type Resolver struct {
	http *resty.Client
}

func NewResolver() *Resolver {
	client := resty.New()
	client.SetHeader("User-Agent", "HSPortalOne/1.0 (URL Resolver)")
	client.SetTimeout(time.Second * 15)
	telemetry.InstrumentResty(client, "urlresolver/http")
	return &Resolver{http: client}
}

// Resolve probes for a live staff page: a known url first, then the
// standard, seasonal and alternative path patterns against the base
// domain. Returns nil when nothing is reachable; probe failures are
// never surfaced as errors.
func (r *Resolver) Resolve(ctx context.Context, baseUrl, knownUrl string) (*Resolved, error) {
	ctx, span := tracer.Start(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("base_url", baseUrl))

	season := CurrentSeason(time.Now())

	if knownUrl != "" {
		final := r.probe(ctx, knownUrl, season)
		if final != "" {
			return &Resolved{
				Url:     final,
				Pattern: "known",
				RequiresSeasonUpdate: strings.Contains(knownUrl, seasonToken) ||
					seasonRegex.MatchString(knownUrl),
			}, nil
		}
	}

	parsed, err := url.Parse(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	domain := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)

	for _, pattern := range standardPatterns {
		final := r.probe(ctx, domain+pattern, season)
		if final != "" {
			return &Resolved{Url: final, Pattern: pattern}, nil
		}
	}

	for _, pattern := range seasonalPatterns {
		testUrl := domain + strings.ReplaceAll(pattern, seasonToken, season)
		if r.probe(ctx, testUrl, season) != "" {
			return &Resolved{Url: testUrl, Pattern: pattern, RequiresSeasonUpdate: true}, nil
		}
	}

	for _, pattern := range alternativePatterns {
		final := r.probe(ctx, domain+pattern, season)
		if final != "" {
			return &Resolved{Url: final, Pattern: pattern}, nil
		}
	}

	span.AddEvent("no pattern matched")
	return nil, nil
}

// probe HEADs a single url following redirects and returns the final
// url, or "" when the url is unreachable or non-2xx. Transport errors
// read the same as a miss.
func (r *Resolver) probe(ctx context.Context, rawUrl, season string) string {
	testUrl := strings.ReplaceAll(rawUrl, seasonToken, season)

	res, err := r.http.R().
		SetContext(ctx).
		Head(testUrl)
	if err != nil {
		return ""
	}
	if res.IsError() {
		return ""
	}
	return res.RawResponse.Request.URL.String()
}
