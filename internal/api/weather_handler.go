package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/emberhq/portfolio-api/internal/weather"
)

// Forecast length limits.
const (
	defaultForecastDays = 5
	maxForecastDays     = 10
)

// cityNotFoundResponse is the 400 body for an unsupported city, listing
// what the caller could ask for instead.
type cityNotFoundResponse struct {
	Error           string   `json:"error"`
	AvailableCities []string `json:"available_cities"`
}

// WeatherHandler serves the simulated weather endpoints. The timeFunc
// field allows tests to pin the reference date.
type WeatherHandler struct {
	timeFunc func() time.Time
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler() *WeatherHandler {
	return &WeatherHandler{timeFunc: time.Now}
}

// Current handles GET /api/weather/current.
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	city, ok := h.matchCity(w, r)
	if !ok {
		return
	}

	RespondWithJSON(w, r, http.StatusOK, WeatherResponse{
		Weather: weather.Current(city, h.timeFunc()),
	})
}

// Forecast handles GET /api/weather/forecast.
func (h *WeatherHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	city, ok := h.matchCity(w, r)
	if !ok {
		return
	}

	days := defaultForecastDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			days = n
		}
	}
	if days > maxForecastDays {
		days = maxForecastDays
	}
	if days < 1 {
		days = 1
	}

	RespondWithJSON(w, r, http.StatusOK, ForecastResponse{
		City:     city,
		Forecast: weather.Forecast(city, h.timeFunc(), days),
	})
}

// Cities handles GET /api/weather/cities.
func (h *WeatherHandler) Cities(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, CityListResponse{Cities: weather.Cities})
}

// matchCity resolves the city query parameter against the supported city
// list, writing the 400 response itself on failure.
func (h *WeatherHandler) matchCity(w http.ResponseWriter, r *http.Request) (string, bool) {
	city := r.URL.Query().Get("city")
	if city == "" {
		RespondWithError(w, r, http.StatusBadRequest, "City parameter is required")
		return "", false
	}

	match, ok := weather.MatchCity(city)
	if !ok {
		RespondWithJSON(w, r, http.StatusBadRequest, cityNotFoundResponse{
			Error:           "City not found",
			AvailableCities: weather.Cities,
		})
		return "", false
	}

	return match, true
}
