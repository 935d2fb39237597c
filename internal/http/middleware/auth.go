package middlewarex

import (
	"encoding/json"
	"net/http"
	"strings"

	"ginsengcms/internal/domain/user"
	"ginsengcms/internal/services/auth"
)

// Authenticate resolves the bearer token (Authorization header, falling
// back to the session cookie) into a user and attaches it to the request
// context. Every failure mode collapses into the same 401 so callers
// cannot probe which part failed.
func Authenticate(svc *auth.Service, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" && cookieName != "" {
				if c, err := r.Cookie(cookieName); err == nil {
					token = c.Value
				}
			}
			if token == "" {
				unauthorized(w)
				return
			}
			u, err := svc.ResolveToken(r.Context(), token)
			if err != nil {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireRole rejects authenticated users whose role is not in the
// allowed set. Must run after Authenticate.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	allowed := map[user.Role]struct{}{}
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFrom(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			if _, ok := allowed[u.Role]; !ok {
				writeJSON(w, http.StatusForbidden, map[string]any{
					"success": false,
					"error":   "insufficient permissions",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]any{
		"success": false,
		"error":   "authentication required",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
