package metocean

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltemarine/shiplog/internal/logger"
)

func TestWeatherClient_Fetch(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/marine", r.URL.Path)
		gotQuery = map[string]string{
			"latitude":        r.URL.Query().Get("latitude"),
			"longitude":       r.URL.Query().Get("longitude"),
			"wind_speed_unit": r.URL.Query().Get("wind_speed_unit"),
		}

		payload := marineResponse{}
		payload.Hourly.Time = []string{"2026-02-17T00:00", "2026-02-17T01:00", "2026-02-18T00:00"}
		payload.Hourly.WaveHeight = []float64{0.5, 0.7, 0.6}
		payload.Hourly.SwellWaveHeight = []float64{0.3, 0.4, 0.35}
		payload.Hourly.WindSpeed10m = []float64{8, 12, 10}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	t.Cleanup(srv.Close)

	client := NewWeatherClient(WeatherConfig{BaseURL: srv.URL}, logger.Nop())

	forecast, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "10.51", gotQuery["latitude"], "defaults to the Kamsar anchorage")
	assert.Equal(t, "-14.91", gotQuery["longitude"])
	assert.Equal(t, "kn", gotQuery["wind_speed_unit"])

	require.Len(t, forecast.SeaState, 3)
	assert.Equal(t, 0.7, forecast.SeaState[1].WaveHeight)

	require.Len(t, forecast.Wind, 2)
	assert.Equal(t, DailyWind{Date: "2026-02-17", MaxSpeed: 12}, forecast.Wind[0])
	assert.Equal(t, DailyWind{Date: "2026-02-18", MaxSpeed: 10}, forecast.Wind[1])
}

func TestWeatherClient_Fetch_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := NewWeatherClient(WeatherConfig{BaseURL: srv.URL}, logger.Nop())

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
}

func TestReduceForecast_CapsSeaStateAt24Hours(t *testing.T) {
	payload := marineResponse{}
	for i := 0; i < 48; i++ {
		payload.Hourly.Time = append(payload.Hourly.Time, "2026-02-17T00:00")
		payload.Hourly.WaveHeight = append(payload.Hourly.WaveHeight, 1.0)
		payload.Hourly.WindSpeed10m = append(payload.Hourly.WindSpeed10m, 5.0)
	}

	forecast := reduceForecast(payload)
	assert.Len(t, forecast.SeaState, 24)
}

func TestReduceForecast_CapsWindAtSevenDays(t *testing.T) {
	payload := marineResponse{}
	days := []string{"11", "12", "13", "14", "15", "16", "17", "18", "19"}
	for _, day := range days {
		payload.Hourly.Time = append(payload.Hourly.Time, "2026-02-"+day+"T00:00")
		payload.Hourly.WindSpeed10m = append(payload.Hourly.WindSpeed10m, 5.0)
	}

	forecast := reduceForecast(payload)
	assert.Len(t, forecast.Wind, 7)
}
