package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"skyvane/internal/auth"
)

// Store is what the handlers need from the user store; *auth.Store satisfies
// it, tests plug in a fake.
type Store interface {
	List(ctx context.Context) ([]auth.User, error)
	GetByID(ctx context.Context, id string) (*auth.User, error)
	Create(ctx context.Context, username, password string, isAdmin bool) (*auth.User, error)
	Update(ctx context.Context, id string, upd auth.UserUpdate) (*auth.User, error)
	Delete(ctx context.Context, id string) (*auth.User, error)
}

// CollectionHandler serves /api/users: list and create.
type CollectionHandler struct {
	Store  Store
	Logger *slog.Logger
}

func (h *CollectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *CollectionHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.List(r.Context())
	if err != nil {
		h.Logger.Error("list users", "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *CollectionHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
		IsAdmin  bool   `json:"isAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Username == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	u, err := h.Store.Create(r.Context(), payload.Username, payload.Password, payload.IsAdmin)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateUser) {
			writeError(w, http.StatusConflict, "user already exists")
			return
		}
		h.Logger.Error("create user", "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"msg":  "user created",
		"user": u,
	})
}

// DetailHandler serves /api/users/{id}: fetch, partial update, delete.
type DetailHandler struct {
	Store  Store
	Logger *slog.Logger
}

func (h *DetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Path is /api/users/{id}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[2] == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}
	id := parts[2]

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *DetailHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	u, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("get user", "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *DetailHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var payload struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
		IsAdmin  *bool   `json:"isAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.Store.Update(r.Context(), id, auth.UserUpdate{
		Username: payload.Username,
		Password: payload.Password,
		IsAdmin:  payload.IsAdmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, auth.ErrDuplicateUser):
			writeError(w, http.StatusConflict, "user already exists")
		default:
			h.Logger.Error("update user", "err", err)
			writeError(w, http.StatusInternalServerError, "server error")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"msg":  "user updated",
		"user": u,
	})
}

func (h *DetailHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	u, err := h.Store.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("delete user", "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	// Deliberately narrower than the stored record: identity and privilege
	// only, no timestamps.
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"msg": "user deleted",
		"user": map[string]interface{}{
			"id":       u.ID,
			"username": u.Username,
			"isAdmin":  u.IsAdmin,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
