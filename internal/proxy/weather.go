package proxy

import (
	"io"
	"net/http"
	"net/url"

	"log/slog"
)

const openMeteoURL = "https://api.open-meteo.com/v1/forecast"

// Forecast location: Allen, TX.
const (
	forecastLatitude  = "33.1032"
	forecastLongitude = "-96.6706"
	forecastTimezone  = "America/Chicago"
)

// WeatherHandler forwards /weather to the Open-Meteo forecast API and relays
// the response body untouched.
type WeatherHandler struct {
	Client  *http.Client
	Logger  *slog.Logger
	BaseURL string // defaults to the Open-Meteo endpoint
}

func (h *WeatherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	base := h.BaseURL
	if base == "" {
		base = openMeteoURL
	}
	params := url.Values{}
	params.Set("latitude", forecastLatitude)
	params.Set("longitude", forecastLongitude)
	params.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode,precipitation_probability_max")
	params.Set("timezone", forecastTimezone)
	params.Set("temperature_unit", "fahrenheit")
	params.Set("forecast_days", "7")

	if !relay(w, r, h.Client, base+"?"+params.Encode()) {
		h.Logger.Error("fetch weather failed")
		writeError(w, http.StatusInternalServerError, "failed to fetch weather data")
	}
}

// relay performs the upstream GET and copies a successful response through.
// It reports false without writing anything on transport or upstream failure.
func relay(w http.ResponseWriter, r *http.Request, client *http.Client, rawurl string) bool {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, rawurl, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, resp.Body)
	return true
}
