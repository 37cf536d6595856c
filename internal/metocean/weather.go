// Package metocean fetches the marine weather forecast and the tide
// schedule shown alongside the timesheet. Both upstream services are
// external collaborators; failures degrade to an error message in the UI,
// never to a crash.
package metocean

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ltemarine/shiplog/internal/logger"
)

const defaultMarineBaseURL = "https://marine-api.open-meteo.com"

// Kamsar anchorage, the default forecast point.
const (
	KamsarLat = 10.51
	KamsarLon = -14.91
)

// HourlyPoint is one hour of sea-state forecast.
type HourlyPoint struct {
	Time       string
	WaveHeight float64 // metres
	SwellWave  float64 // metres
	WindSpeed  float64 // knots
}

// DailyWind is the maximum forecast wind speed for one day.
type DailyWind struct {
	Date     string
	MaxSpeed float64 // knots
}

// Forecast is the processed marine forecast: the next 24 hours of sea state
// and a 7-day wind outlook.
type Forecast struct {
	SeaState []HourlyPoint
	Wind     []DailyWind
}

// WeatherClient fetches the Open-Meteo marine forecast.
type WeatherClient struct {
	http   *resty.Client
	lat    float64
	lon    float64
	logger *logger.Logger
}

// WeatherConfig configures the forecast point. BaseURL is overridable for
// tests; zero coordinates fall back to Kamsar.
type WeatherConfig struct {
	Latitude  float64
	Longitude float64
	BaseURL   string
	Timeout   time.Duration
}

// NewWeatherClient constructs a marine forecast client.
func NewWeatherClient(cfg WeatherConfig, log *logger.Logger) *WeatherClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultMarineBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Latitude == 0 && cfg.Longitude == 0 {
		cfg.Latitude, cfg.Longitude = KamsarLat, KamsarLon
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &WeatherClient{http: httpClient, lat: cfg.Latitude, lon: cfg.Longitude, logger: log}
}

// marineResponse is the wire shape of the hourly marine endpoint.
type marineResponse struct {
	Hourly struct {
		Time            []string  `json:"time"`
		WaveHeight      []float64 `json:"wave_height"`
		SwellWaveHeight []float64 `json:"swell_wave_height"`
		WindSpeed10m    []float64 `json:"wind_speed_10m"`
	} `json:"hourly"`
}

// Fetch pulls the hourly forecast and reduces it to the shapes the UI
// renders: 24 hourly sea-state points and per-day maximum wind.
func (w *WeatherClient) Fetch(ctx context.Context) (Forecast, error) {
	var payload marineResponse

	resp, err := w.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":        fmt.Sprintf("%.2f", w.lat),
			"longitude":       fmt.Sprintf("%.2f", w.lon),
			"hourly":          "wave_height,swell_wave_height,wind_speed_10m",
			"wind_speed_unit": "kn",
			"timezone":        "GMT",
		}).
		SetResult(&payload).
		Get("/v1/marine")
	if err != nil {
		return Forecast{}, fmt.Errorf("marine forecast request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Forecast{}, fmt.Errorf("marine forecast: http %d", resp.StatusCode())
	}

	return reduceForecast(payload), nil
}

func reduceForecast(payload marineResponse) Forecast {
	hourly := payload.Hourly

	n := len(hourly.Time)
	forecast := Forecast{}

	for i := 0; i < n && i < 24; i++ {
		point := HourlyPoint{Time: hourly.Time[i]}
		if i < len(hourly.WaveHeight) {
			point.WaveHeight = hourly.WaveHeight[i]
		}
		if i < len(hourly.SwellWaveHeight) {
			point.SwellWave = hourly.SwellWaveHeight[i]
		}
		if i < len(hourly.WindSpeed10m) {
			point.WindSpeed = hourly.WindSpeed10m[i]
		}
		forecast.SeaState = append(forecast.SeaState, point)
	}

	// Hourly timestamps look like "2026-02-17T13:00"; the date is the
	// first 10 characters.
	for i := 0; i < n && i < len(hourly.WindSpeed10m); i++ {
		if len(hourly.Time[i]) < 10 {
			continue
		}
		date := hourly.Time[i][:10]

		if k := len(forecast.Wind); k > 0 && forecast.Wind[k-1].Date == date {
			if hourly.WindSpeed10m[i] > forecast.Wind[k-1].MaxSpeed {
				forecast.Wind[k-1].MaxSpeed = hourly.WindSpeed10m[i]
			}
			continue
		}
		if len(forecast.Wind) == 7 {
			break
		}
		forecast.Wind = append(forecast.Wind, DailyWind{Date: date, MaxSpeed: hourly.WindSpeed10m[i]})
	}

	return forecast
}
