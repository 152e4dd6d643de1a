// Package football is the API-Football (RapidAPI v3) data capability:
// fixtures, team detail and player season detail.
//
// Requests share one token bucket so concurrent pipeline runs stay inside
// the account quota.
package football

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"scribe/internal/logger"
)

var (
	// ErrMissingAPIKey is returned when the client is built without a RapidAPI key
	ErrMissingAPIKey = errors.New("RapidAPI key is required")

	// ErrInvalidPayload is returned when the API answers with something that is not JSON
	ErrInvalidPayload = errors.New("invalid API-Football payload")
)

// Options configures a Client.
type Options struct {
	APIKey            string
	Host              string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
	HTTPClient        *http.Client
}

// Client is the HTTP client for API-Football endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	host       string
	apiKey     string
	limiter    *rate.Limiter
}

// NewClient creates a rate-limited API-Football client.
func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 30
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	rps := float64(opts.RequestsPerMinute) / 60.0
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		host:       opts.Host,
		apiKey:     opts.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// FetchFixture returns the full fixture payload (events, lineups,
// statistics) for one fixture id.
func (c *Client) FetchFixture(ctx context.Context, fixtureID string) (*FixturePayload, error) {
	body, err := c.get(ctx, "/fixtures", url.Values{"id": {fixtureID}})
	if err != nil {
		return nil, fmt.Errorf("fetch fixture %s: %w", fixtureID, err)
	}
	var payload FixturePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w: %v", fixtureID, ErrInvalidPayload, err)
	}
	return &payload, nil
}

// FetchFixtures lists fixtures of a league on one day (YYYY-MM-DD). The
// season is derived from the date's year.
func (c *Client) FetchFixtures(ctx context.Context, leagueID int, date string) (*FixturePayload, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	params := url.Values{
		"league": {strconv.Itoa(leagueID)},
		"date":   {date},
		"season": {strconv.Itoa(day.Year())},
	}
	body, err := c.get(ctx, "/fixtures", params)
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures for league %d on %s: %w", leagueID, date, err)
	}
	var payload FixturePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w: %v", ErrInvalidPayload, err)
	}
	return &payload, nil
}

// FetchTeam returns the raw /teams payload for a team id.
func (c *Client) FetchTeam(ctx context.Context, teamID int) (json.RawMessage, error) {
	body, err := c.get(ctx, "/teams", url.Values{"id": {strconv.Itoa(teamID)}})
	if err != nil {
		return nil, fmt.Errorf("fetch team %d: %w", teamID, err)
	}
	return body, nil
}

// FetchPlayer returns the raw /players payload for a player in a season.
func (c *Client) FetchPlayer(ctx context.Context, playerID, season int) (json.RawMessage, error) {
	params := url.Values{
		"id":     {strconv.Itoa(playerID)},
		"season": {strconv.Itoa(season)},
	}
	body, err := c.get(ctx, "/players", params)
	if err != nil {
		return nil, fmt.Errorf("fetch player %d season %d: %w", playerID, season, err)
	}
	return body, nil
}

// get performs a rate-limited GET and returns the body if it is valid JSON.
func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	logger.Debug("API-Football request",
		"path", path,
		"query", logger.Sanitize(params.Encode()),
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API-Football %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w from %s: %s", ErrInvalidPayload, path, truncate(body, 200))
	}

	return body, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
