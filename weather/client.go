// Package weather fetches a current conditions plus 7-day forecast snapshot
// from the Open-Meteo API. No API key is required.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/agroplan/agroplan/models"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Bucharest, used when no coordinates are configured or passed by flag.
const (
	FallbackLatitude  = 44.43
	FallbackLongitude = 26.10
)

// WindAlertThreshold is the daily maximum wind speed, in km/h, above which
// spraying treatments should be postponed.
const WindAlertThreshold = 20.0

// Current holds the conditions at fetch time.
type Current struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windSpeed"`
	Code        int     `json:"code"`
}

// Day is one entry of the daily forecast.
type Day struct {
	Date          models.Date `json:"date"`
	Code          int         `json:"code"`
	TempMax       float64     `json:"tempMax"`
	TempMin       float64     `json:"tempMin"`
	Precipitation float64     `json:"precipitation"`
	WindMax       float64     `json:"windMax"`
}

// Snapshot bundles current conditions with the daily forecast.
type Snapshot struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Current   Current `json:"current"`
	Daily     []Day   `json:"daily"`
}

// WindAlert reports whether today's forecast wind makes spraying inadvisable.
func (s *Snapshot) WindAlert() bool {
	if len(s.Daily) == 0 {
		return false
	}
	return s.Daily[0].WindMax > WindAlertThreshold
}

// Client talks to the Open-Meteo forecast endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a weather client. An empty baseURL selects the public
// Open-Meteo endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// openMeteoResponse mirrors the subset of the Open-Meteo payload we read.
type openMeteoResponse struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
	Daily struct {
		Time             []string  `json:"time"`
		WeatherCode      []int     `json:"weathercode"`
		TempMax          []float64 `json:"temperature_2m_max"`
		TempMin          []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WindSpeedMax     []float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

// Fetch retrieves the snapshot for the given coordinates.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min,precipitation_sum,windspeed_10m_max")
	q.Set("current_weather", "true")
	q.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("forecast request failed (%s): %s", resp.Status, string(body))
	}

	var parsed openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}

	snapshot := &Snapshot{
		Latitude:  parsed.Latitude,
		Longitude: parsed.Longitude,
		Current: Current{
			Temperature: parsed.CurrentWeather.Temperature,
			WindSpeed:   parsed.CurrentWeather.WindSpeed,
			Code:        parsed.CurrentWeather.WeatherCode,
		},
	}

	for i, day := range parsed.Daily.Time {
		date, err := models.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("forecast returned a malformed date %q: %w", day, err)
		}
		entry := Day{Date: date}
		if i < len(parsed.Daily.WeatherCode) {
			entry.Code = parsed.Daily.WeatherCode[i]
		}
		if i < len(parsed.Daily.TempMax) {
			entry.TempMax = parsed.Daily.TempMax[i]
		}
		if i < len(parsed.Daily.TempMin) {
			entry.TempMin = parsed.Daily.TempMin[i]
		}
		if i < len(parsed.Daily.PrecipitationSum) {
			entry.Precipitation = parsed.Daily.PrecipitationSum[i]
		}
		if i < len(parsed.Daily.WindSpeedMax) {
			entry.WindMax = parsed.Daily.WindSpeedMax[i]
		}
		snapshot.Daily = append(snapshot.Daily, entry)
	}

	return snapshot, nil
}

// Describe maps a WMO weather code to a short Romanian description.
func Describe(code int) string {
	switch {
	case code == 0:
		return "Senin"
	case code <= 3:
		return "Partial noros"
	case code <= 48:
		return "Ceata"
	case code <= 57:
		return "Burnita"
	case code <= 67:
		return "Ploaie"
	case code <= 77:
		return "Ninsoare"
	case code <= 82:
		return "Averse"
	case code <= 86:
		return "Averse de ninsoare"
	case code <= 99:
		return "Furtuna"
	default:
		return "Necunoscut"
	}
}
