// PlantDiseaseDetector | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
)

const CurrentUserKey contextKey = "current_user"

// SessionUser is the authenticated identity attached to request
// context. Role flags are independent booleans, not an enum.
type SessionUser struct {
	ID           string
	Email        string
	Name         string
	IsUser       bool
	IsAdmin      bool
	IsSuperAdmin bool
}

type TokenVerifier interface {
	VerifySessionToken(ctx context.Context, token string) (string, error)
}

type UserLoader interface {
	LoadSessionUser(ctx context.Context, id string) (*SessionUser, error)
}

// Authenticator resolves the session token (cookie first, bearer header
// as fallback), verifies it and loads the subject's account. A valid
// token whose account has since disappeared is still a 401.
func Authenticator(
	verifier TokenVerifier,
	users UserLoader,
	cookieName string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r, cookieName)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authentication token"),
				)
				return
			}

			subjectID, err := verifier.VerifySessionToken(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			user, err := users.LoadSessionUser(r.Context(), subjectID)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					core.JSONError(
						w,
						core.UnauthorizedError("account no longer exists"),
					)
					return
				}
				core.InternalServerError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), CurrentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only routes. It must sit behind
// Authenticator: a missing session is a 401 there, a present session
// without the admin flag is a 403 here.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetCurrentUser(r.Context())

		if user == nil {
			core.JSONError(
				w,
				core.UnauthorizedError("authentication required"),
			)
			return
		}

		if !user.IsAdmin {
			core.JSONError(
				w,
				core.ForbiddenError("insufficient permissions"),
			)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ExtractToken prefers the session cookie set at login; an explicit
// Authorization bearer header works for non-browser clients.
func ExtractToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func GetCurrentUser(ctx context.Context) *SessionUser {
	if user, ok := ctx.Value(CurrentUserKey).(*SessionUser); ok {
		return user
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if user := GetCurrentUser(ctx); user != nil {
		return user.ID
	}
	return ""
}
