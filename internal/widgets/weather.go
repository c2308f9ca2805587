package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Report is the hub's weather widget payload. Temperature and WindSpeed are
// preformatted strings so placeholders render the same way live values do.
type Report struct {
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	WindSpeed   string `json:"wind_speed"`
}

// offlineReport is served whenever the upstream API cannot be reached.
var offlineReport = Report{Temperature: "--", Condition: "Offline", WindSpeed: "--"}

// Demo coordinates (New York).
const (
	defaultLatitude   = 40.71
	defaultLongitude  = -74.00
	defaultWeatherURL = "https://api.open-meteo.com/v1/forecast"
)

// WeatherClient fetches current conditions for the hub dashboard. Upstream
// failures never surface to callers; the offline report is returned instead.
type WeatherClient struct {
	httpClient *http.Client
	url        string
	latitude   float64
	longitude  float64
	cache      *memoCache[Report]
	logger     *slog.Logger
}

// NewWeatherClient builds a weather client. Zero coordinates fall back to
// the demo location; a zero cacheTTL uses the cache default.
func NewWeatherClient(httpClient *http.Client, url string, latitude, longitude float64, cacheTTL time.Duration, logger *slog.Logger) *WeatherClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if url == "" {
		url = defaultWeatherURL
	}
	if latitude == 0 && longitude == 0 {
		latitude = defaultLatitude
		longitude = defaultLongitude
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WeatherClient{
		httpClient: httpClient,
		url:        url,
		latitude:   latitude,
		longitude:  longitude,
		cache:      newMemoCache[Report](cacheTTL, nil),
		logger:     logger,
	}
}

// Fetch returns the current weather report, serving from cache while fresh.
func (c *WeatherClient) Fetch(ctx context.Context) Report {
	if c == nil {
		return offlineReport
	}
	if report, ok := c.cache.Get("weather"); ok {
		return report
	}

	report, err := c.fetchUpstream(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "weather fetch failed, serving offline report", "error", err)
		return offlineReport
	}
	c.cache.Store("weather", report)
	return report
}

type currentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
}

type weatherResponse struct {
	CurrentWeather currentWeather `json:"current_weather"`
}

func (c *WeatherClient) fetchUpstream(ctx context.Context) (Report, error) {
	url := fmt.Sprintf("%s?latitude=%.2f&longitude=%.2f&current_weather=true", c.url, c.latitude, c.longitude)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Report{}, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Report{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("weather upstream returned %d", res.StatusCode)
	}

	var payload weatherResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return Report{}, err
	}

	current := payload.CurrentWeather
	return Report{
		Temperature: fmt.Sprintf("%g°C", current.Temperature),
		Condition:   conditionFor(current.WeatherCode),
		WindSpeed:   fmt.Sprintf("%g", current.WindSpeed),
	}, nil
}

// conditionFor maps WMO weather codes to the coarse labels the widget shows.
func conditionFor(code int) string {
	switch {
	case code > 70:
		return "Snowy"
	case code > 50:
		return "Rainy"
	case code > 3:
		return "Cloudy"
	default:
		return "Clear Sky"
	}
}
