package proxy

import (
	"encoding/json"
	"net/http"
	"net/url"

	"log/slog"
)

const newsAPIURL = "https://newsapi.org/v2/everything"

// NewsHandler forwards /api/news to NewsAPI with a fixed cybersecurity query.
type NewsHandler struct {
	Client  *http.Client
	Logger  *slog.Logger
	APIKey  string
	BaseURL string // defaults to the NewsAPI endpoint
}

func (h *NewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.APIKey == "" {
		writeError(w, http.StatusInternalServerError, "news api key not configured")
		return
	}
	base := h.BaseURL
	if base == "" {
		base = newsAPIURL
	}
	params := url.Values{}
	params.Set("q", "cybersecurity")
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("pageSize", "10")
	params.Set("apiKey", h.APIKey)

	if !relay(w, r, h.Client, base+"?"+params.Encode()) {
		h.Logger.Error("fetch news failed")
		writeError(w, http.StatusInternalServerError, "failed to fetch news")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
