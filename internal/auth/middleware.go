package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Principal is the verified identity attached to a request after the token
// middleware accepts it. Only this package constructs one, so a handler that
// reads a Principal knows verification already ran.
type Principal struct {
	UserID   string
	Username string
	IsAdmin  bool
}

type contextKey string

const principalContextKey contextKey = "skyvane_principal"

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*Principal)
	return p, ok
}

// TokenMiddleware rejects requests without a valid bearer token and attaches
// the decoded principal to the request context.
func TokenMiddleware(codec *TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "authorization token required")
				return
			}
			claims, err := codec.Verify(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			p := &Principal{
				UserID:   claims.Subject,
				Username: claims.Username,
				IsAdmin:  claims.IsAdmin,
			}
			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
		})
	}
}

// RequireAdmin runs after TokenMiddleware. A request that reaches it without
// a principal fails closed as unauthenticated; privilege is never evaluated
// on an unverified context.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authorization token required")
			return
		}
		if !p.IsAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
