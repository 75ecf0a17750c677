// Package forecast fetches the day of swell, wind and tide forecasts a render
// is drawn from.
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// DateLayout is the format of the date a forecast is requested for.
const DateLayout = "2006-01-02"

// Service fetches the forecast of a single day.
type Service interface {
	Fetch(ctx context.Context, date time.Time) (*Payload, error)
}

var (
	_ Service = (*WillyWeather)(nil)
	_ Service = (*Fixture)(nil)
)

// WillyWeather reads forecasts from the WillyWeather v2 API.
type WillyWeather struct {
	baseURL    string
	apiKey     string
	locationID int
	userAgent  string
	from       string
	httpClient *http.Client
}

// WillyWeatherOptions configures a WillyWeather client.
type WillyWeatherOptions struct {
	BaseURL    string
	APIKey     string
	LocationID int
	UserAgent  string
	// From is sent as the From header so the API owner can reach the operator.
	From    string
	Timeout time.Duration
}

// NewWillyWeather creates a new WillyWeather client
func NewWillyWeather(opts WillyWeatherOptions) *WillyWeather {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.willyweather.com.au"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &WillyWeather{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		locationID: opts.LocationID,
		userAgent:  opts.UserAgent,
		from:       opts.From,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// Fetch retrieves one day of tides, swell and wind starting at date.
func (c *WillyWeather) Fetch(ctx context.Context, date time.Time) (*Payload, error) {
	params := url.Values{}
	params.Add("forecasts", "tides,swell,wind")
	params.Add("days", "1")
	params.Add("startDate", date.Format(DateLayout))

	requestURL := fmt.Sprintf("%s/v2/%s/locations/%d/weather.json?%s",
		c.baseURL, url.PathEscape(c.apiKey), c.locationID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.from != "" {
		req.Header.Set("From", c.from)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var p Payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &p, nil
}

// Fixture reads a saved weather.json document from disk. When path is a
// directory the file named after the requested date is used.
type Fixture struct {
	path string
}

func NewFixture(path string) *Fixture {
	return &Fixture{path: path}
}

func (f *Fixture) Fetch(ctx context.Context, date time.Time) (*Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := f.path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, date.Format(DateLayout)+".json")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &p, nil
}
