package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"skyvane/internal/auth"
	"skyvane/internal/proxy"
	"skyvane/internal/users"
)

func NewRouter(
	logger *slog.Logger,
	authSvc *auth.Service,
	codec *auth.TokenCodec,
	userStore *auth.Store,
	newsAPIKey string,
) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Auth
	mux.Handle("/api/auth/login", loginHandler(authSvc, logger))

	// Third-party passthroughs
	client := &http.Client{Timeout: 10 * time.Second}
	mux.Handle("/weather", &proxy.WeatherHandler{Client: client, Logger: logger})
	mux.Handle("/api/news", &proxy.NewsHandler{Client: client, Logger: logger, APIKey: newsAPIKey})

	// User administration: valid token, then admin privilege.
	secured := auth.TokenMiddleware(codec)
	collection := &users.CollectionHandler{Store: userStore, Logger: logger}
	detail := &users.DetailHandler{Store: userStore, Logger: logger}
	mux.Handle("/api/users", secured(auth.RequireAdmin(collection)))
	mux.Handle("/api/users/", secured(auth.RequireAdmin(detail)))

	// CORS wrapper (simple, for local UI/tools).
	return withCORS(mux)
}
