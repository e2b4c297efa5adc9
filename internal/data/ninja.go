package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// NinjaClient fetches per-site hourly capacity-factor profiles from the
// renewables.ninja API.
type NinjaClient struct {
	Token   string
	BaseURL string
	Client  *http.Client
}

// NewNinjaClient creates a renewables.ninja API client.
// If baseURL is empty, defaults to "https://www.renewables.ninja".
func NewNinjaClient(token string, baseURL string) *NinjaClient {
	if baseURL == "" {
		baseURL = "https://www.renewables.ninja"
	}
	return &NinjaClient{
		Token:   token,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchParams defines one profile request: a site position plus the date
// span to pull. Dataset selects "pv" or "wind".
type FetchParams struct {
	Dataset   string
	Latitude  float64
	Longitude float64
	From      time.Time
	To        time.Time
}

// NinjaError represents an error response from the renewables.ninja API.
type NinjaError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *NinjaError) Error() string {
	return e.Message
}

// ninjaResponse matches the API's JSON shape: a timestamp-keyed map of
// capacity factors plus request metadata.
type ninjaResponse struct {
	Data     map[string]float64 `json:"data"`
	Metadata map[string]any     `json:"metadata"`
}

// FetchProfile pulls one site's hourly capacity-factor series.
//
// Responses may be served from the dev-only in-memory cache when
// ENABLE_NINJA_CACHE=true; see cache.go.
func (c *NinjaClient) FetchProfile(ctx context.Context, params FetchParams) ([]model.Observation, error) {
	if c.Token == "" {
		return nil, &NinjaError{Code: "MISSING_TOKEN", Message: "renewables.ninja API token is required"}
	}
	if params.Dataset == "" {
		return nil, fmt.Errorf("dataset is required")
	}
	if params.From.IsZero() || params.To.IsZero() {
		return nil, fmt.Errorf("from and to are required")
	}
	if params.From.After(params.To) {
		return nil, fmt.Errorf("from must be before to")
	}

	cache := GetCache()
	cacheKey := GenerateCacheKey(params)
	if cache != nil {
		if cached, found := cache.Get(cacheKey); found {
			log.Debug().
				Str("dataset", params.Dataset).
				Int("rows", len(cached)).
				Msg("ninja cache hit")
			return cached, nil
		}
	}

	u, err := url.Parse(fmt.Sprintf("%s/api/data/%s", c.BaseURL, params.Dataset))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("lat", fmt.Sprintf("%.4f", params.Latitude))
	q.Set("lon", fmt.Sprintf("%.4f", params.Longitude))
	q.Set("date_from", params.From.Format("2006-01-02"))
	q.Set("date_to", params.To.Format("2006-01-02"))
	q.Set("capacity", "1")
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.Token)

	log.Debug().
		Str("dataset", params.Dataset).
		Float64("lat", params.Latitude).
		Float64("lon", params.Longitude).
		Str("from", params.From.Format("2006-01-02")).
		Str("to", params.To.Format("2006-01-02")).
		Msg("ninja request")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ninja request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		ne := &NinjaError{
			StatusCode: resp.StatusCode,
			Code:       "NINJA_ERROR",
			Message:    fmt.Sprintf("renewables.ninja returned %d: %s", resp.StatusCode, string(body)),
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			ne.Code = "INVALID_TOKEN"
		case http.StatusTooManyRequests:
			ne.Code = "RATE_LIMITED"
			ne.RetryAfter = resp.Header.Get("Retry-After")
		}
		return nil, ne
	}

	var parsed ninjaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse ninja response: %w", err)
	}

	rows, err := toObservations(parsed.Data)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.Put(cacheKey, rows)
	}
	return rows, nil
}

func toObservations(data map[string]float64) ([]model.Observation, error) {
	rows := make([]model.Observation, 0, len(data))
	for ts, v := range data {
		t, err := parseNinjaTimestamp(ts)
		if err != nil {
			return nil, err
		}
		rows = append(rows, model.Observation{Timestamp: t, Value: v})
	}
	model.SortObservations(rows)
	return rows, nil
}

func parseNinjaTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04:05Z", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized ninja timestamp %q", s)
}
