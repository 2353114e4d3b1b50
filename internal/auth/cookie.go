// PlantDiseaseDetector | 2026
// cookie.go

package auth

import (
	"net/http"
	"time"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/config"
)

// SetSessionCookie attaches the token as an http-only session cookie.
// The secure flag follows deployment config.
func SetSessionCookie(
	w http.ResponseWriter,
	cfg config.JWTConfig,
	token string,
	expiresAt time.Time,
) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie unconditionally.
func ClearSessionCookie(w http.ResponseWriter, cfg config.JWTConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
