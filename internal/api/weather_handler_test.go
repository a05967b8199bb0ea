package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberhq/portfolio-api/internal/weather"
)

func newWeatherHandlerForTest() *WeatherHandler {
	handler := NewWeatherHandler()
	handler.timeFunc = func() time.Time {
		return time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC)
	}
	return handler
}

func TestWeatherCurrent(t *testing.T) {
	t.Parallel()

	handler := newWeatherHandlerForTest()

	t.Run("known city", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.Current(recorder, jsonRequest(t, "GET", "/api/weather/current?city=seattle", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		report := body["weather"].(map[string]interface{})
		assert.Equal(t, "Seattle", report["city"])
		assert.Equal(t, "2025-07-10", report["date"])
		assert.NotEmpty(t, report["condition"])
	})

	t.Run("missing city parameter", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.Current(recorder, jsonRequest(t, "GET", "/api/weather/current", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "City parameter is required", body["error"])
	})

	t.Run("unknown city lists alternatives", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.Current(recorder, jsonRequest(t, "GET", "/api/weather/current?city=atlantis", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "City not found", body["error"])
		assert.Len(t, body["available_cities"], len(weather.Cities))
	})

	t.Run("repeated requests are deterministic", func(t *testing.T) {
		first := httptest.NewRecorder()
		handler.Current(first, jsonRequest(t, "GET", "/api/weather/current?city=Boston", nil))
		second := httptest.NewRecorder()
		handler.Current(second, jsonRequest(t, "GET", "/api/weather/current?city=Boston", nil))

		assert.Equal(t, first.Body.String(), second.Body.String())
	})
}

func TestWeatherForecast(t *testing.T) {
	t.Parallel()

	handler := newWeatherHandlerForTest()

	t.Run("default length", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.Forecast(recorder, jsonRequest(t, "GET", "/api/weather/forecast?city=Denver", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Denver", body["city"])
		assert.Len(t, body["forecast"], defaultForecastDays)
	})

	t.Run("days capped at maximum", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.Forecast(recorder,
			jsonRequest(t, "GET", "/api/weather/forecast?city=Denver&days=50", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Len(t, body["forecast"], maxForecastDays)
	})

	t.Run("substring match resolves the full name", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.Forecast(recorder,
			jsonRequest(t, "GET", "/api/weather/forecast?city=san+fran&days=2", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "San Francisco", body["city"])
		assert.Len(t, body["forecast"], 2)
	})

	t.Run("missing city parameter", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.Forecast(recorder, jsonRequest(t, "GET", "/api/weather/forecast", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestWeatherCities(t *testing.T) {
	t.Parallel()

	handler := newWeatherHandlerForTest()

	recorder := httptest.NewRecorder()
	handler.Cities(recorder, jsonRequest(t, "GET", "/api/weather/cities", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	cities := body["cities"].([]interface{})
	assert.Len(t, cities, len(weather.Cities))
	assert.Contains(t, cities, "New York")
}
