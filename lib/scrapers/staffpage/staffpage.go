// Package staffpage fetches coaching staff pages from athletics sites.
package staffpage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hsportal-backend/lib/htmlutil"
	"hsportal-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/staffpage")

// ErrFetchFailed covers non-2xx responses and transport errors alike,
// callers decide whether the failure is retryable.
var ErrFetchFailed = fmt.Errorf("failed to fetch staff page")

const userAgent = "HSPortalOne/1.0 (Recruiting Research; contact@hsportalone.com)"

type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "text/html")
	client.SetHeader("Cache-Control", "no-cache")
	client.SetTimeout(time.Second * 30)
	// many athletics sites sit behind cloudflare
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "scrapers/staffpage/http")

	return &Client{http: client}
}

// Fetch GETs a staff page and returns the raw html. Any failure mode
// collapses into ErrFetchFailed.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return "", fmt.Errorf("%w: %s", ErrFetchFailed, url)
	}
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		return "", fmt.Errorf("%w: %s: %s", ErrFetchFailed, url, res.Status())
	}

	return res.String(), nil
}

var coachKeywords = []string{
	"coach",
	"staff",
	"coordinator",
	"head coach",
	"offensive",
	"defensive",
}

type Validation struct {
	Valid           bool   `json:"valid"`
	Status          int    `json:"status,omitempty"`
	Title           string `json:"title,omitempty"`
	HasCoachContent bool   `json:"hasCoachContent,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Validate fetches a url and reports whether it looks like a staff page.
func (c *Client) Validate(ctx context.Context, url string) Validation {
	ctx, span := tracer.Start(ctx, "Validate")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		return Validation{Valid: false, Error: err.Error()}
	}
	if res.IsError() {
		return Validation{
			Valid:  false,
			Status: res.StatusCode(),
			Error:  fmt.Sprintf("HTTP %d", res.StatusCode()),
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		span.RecordError(err)
		return Validation{Valid: false, Error: err.Error()}
	}

	return Validation{
		Valid:           true,
		Status:          res.StatusCode(),
		Title:           htmlutil.PageTitle(doc),
		HasCoachContent: htmlutil.ContainsKeyword(doc, coachKeywords),
	}
}
