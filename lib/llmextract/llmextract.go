// Package llmextract turns unstructured staff-page html into structured
// coach records using the Anthropic messages API.
package llmextract

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"hsportal-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("llmextract")

type ExtractedCoach struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Title     string `json:"title"`
	// head | offense | defense | special_teams | support
	PositionGroup           string `json:"position_group,omitempty"`
	IsRecruitingCoordinator bool   `json:"is_recruiting_coordinator,omitempty"`
}

// Extractor is the llm boundary. Output must be treated as potentially
// incomplete or hallucinated, never as authoritative truth.
type Extractor interface {
	Extract(ctx context.Context, html, programName string) ([]ExtractedCoach, error)
}

const (
	defaultBaseUrl = "https://api.anthropic.com"
	defaultModel   = "claude-sonnet-4-20250514"
	maxTokens      = 4096
	// pages past this size are truncated before prompting
	maxHtmlBytes = 50_000
)

type Config struct {
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
	Model   string `json:"model"`
}

type Client struct {
	http  *resty.Client
	model string
}

func NewClient(config Config) *Client {
	baseUrl := config.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	model := config.Model
	if model == "" {
		model = defaultModel
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetHeader("x-api-key", config.ApiKey)
	client.SetHeader("anthropic-version", "2023-06-01")
	client.SetHeader("content-type", "application/json")
	client.SetTimeout(time.Minute * 2)
	telemetry.InstrumentResty(client, "llmextract/http")

	return &Client{http: client, model: model}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

const promptFormat = `Extract the football coaching staff from this HTML page for %s.

Return a JSON array of coaches with this structure:
[
  {
    "first_name": "John",
    "last_name": "Smith",
    "title": "Head Coach",
    "position_group": "head" | "offense" | "defense" | "special_teams" | "support",
    "is_recruiting_coordinator": boolean
  }
]

Only include football coaches. Ignore other sports staff.
If you can't find coaching staff, return an empty array [].

HTML content:
%s`

func (c *Client) Extract(ctx context.Context, html, programName string) ([]ExtractedCoach, error) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()
	span.SetAttributes(
		attribute.String("program", programName),
		attribute.Int("html_size", len(html)),
	)

	if len(html) > maxHtmlBytes {
		html = html[:maxHtmlBytes]
	}

	var res messageResponse
	httpRes, err := c.http.R().
		SetContext(ctx).
		// decode even when a proxy mislabels the response content type
		ForceContentType("application/json").
		SetBody(messageRequest{
			Model:     c.model,
			MaxTokens: maxTokens,
			Messages: []message{
				{
					Role:    "user",
					Content: fmt.Sprintf(promptFormat, programName, html),
				},
			},
		}).
		SetResult(&res).
		Post("/v1/messages")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, err
	}
	if httpRes.IsError() {
		err := fmt.Errorf("anthropic api: %s", httpRes.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var text string
	for _, block := range res.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}

	coaches := ParseCoaches(text)
	span.SetAttributes(attribute.Int("coach_count", len(coaches)))
	return coaches, nil
}

var jsonArrayRegex = regexp.MustCompile(`(?s)\[.*\]`)

// ParseCoaches recovers a coach array from model output, which may wrap
// the JSON in prose or markdown fences. Malformed output degrades to an
// empty list rather than an error.
func ParseCoaches(text string) []ExtractedCoach {
	match := jsonArrayRegex.FindString(text)
	if match == "" {
		return nil
	}

	var coaches []ExtractedCoach
	err := json.Unmarshal([]byte(match), &coaches)
	if err != nil {
		return nil
	}
	return coaches
}
