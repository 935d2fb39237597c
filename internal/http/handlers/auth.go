package handlers

import (
	"net/http"
	"time"

	middlewarex "ginsengcms/internal/http/middleware"
	"ginsengcms/internal/services/auth"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	auth.TokenPair
	User any `json:"user"`
}

func setSessionCookie(w http.ResponseWriter, cookieName, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Login exchanges credentials for a token pair. The access token is
// also set as an HTTP-only cookie for browser clients.
func Login(svc *auth.Service, cookieName string, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decode(r, &req); err != nil {
			respondError(w, err)
			return
		}
		pair, u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondError(w, err)
			return
		}
		setSessionCookie(w, cookieName, pair.AccessToken, ttl)
		respondData(w, http.StatusOK, loginResponse{TokenPair: pair, User: u})
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Refresh trades a refresh token for a new pair. Token errors collapse
// to a generic 401 just like the auth middleware.
func Refresh(svc *auth.Service, cookieName string, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := decode(r, &req); err != nil {
			respondError(w, err)
			return
		}
		pair, u, err := svc.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: "authentication required"})
			return
		}
		setSessionCookie(w, cookieName, pair.AccessToken, ttl)
		respondData(w, http.StatusOK, loginResponse{TokenPair: pair, User: u})
	}
}

// Logout clears the session cookie. Tokens themselves stay valid until
// expiry; there is no server-side revocation list.
func Logout(cookieName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		respondMessage(w, http.StatusOK, "logged out")
	}
}

// Me returns the authenticated user attached by the auth middleware.
func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middlewarex.UserFrom(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: "authentication required"})
			return
		}
		respondData(w, http.StatusOK, u)
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

func ChangePassword(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middlewarex.UserFrom(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: "authentication required"})
			return
		}
		var req changePasswordRequest
		if err := decode(r, &req); err != nil {
			respondError(w, err)
			return
		}
		if err := svc.ChangePassword(r.Context(), u.ID, req.CurrentPassword, req.NewPassword); err != nil {
			respondError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "password updated")
	}
}
