// PlantDiseaseDetector | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
)

type fakeVerifier struct {
	subjects map[string]string
	err      error
}

func (f *fakeVerifier) VerifySessionToken(
	_ context.Context,
	token string,
) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if subject, ok := f.subjects[token]; ok {
		return subject, nil
	}
	return "", core.ErrTokenInvalid
}

type fakeLoader struct {
	users map[string]*SessionUser
}

func (f *fakeLoader) LoadSessionUser(
	_ context.Context,
	id string,
) (*SessionUser, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, core.ErrNotFound
}

const testCookie = "access_token"

func authChain(
	verifier TokenVerifier,
	users UserLoader,
	extra ...func(http.Handler) http.Handler,
) (http.Handler, *SessionUser) {
	var seen SessionUser

	var handler http.Handler = http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if user := GetCurrentUser(r.Context()); user != nil {
				seen = *user
			}
			w.WriteHeader(http.StatusOK)
		},
	)

	for i := len(extra) - 1; i >= 0; i-- {
		handler = extra[i](handler)
	}
	handler = Authenticator(verifier, users, testCookie)(handler)

	return handler, &seen
}

func TestAuthenticator(t *testing.T) {
	verifier := &fakeVerifier{subjects: map[string]string{"good-token": "u-1"}}
	loader := &fakeLoader{users: map[string]*SessionUser{
		"u-1": {ID: "u-1", Email: "gardener@example.com", IsUser: true},
	}}

	t.Run("Should reject a request with no token", func(t *testing.T) {
		handler, _ := authChain(verifier, loader)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/users/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should reject an invalid token", func(t *testing.T) {
		handler, _ := authChain(verifier, loader)

		req := httptest.NewRequest("GET", "/users/me", nil)
		req.Header.Set("Authorization", "Bearer forged")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should reject a valid token for a deleted account", func(t *testing.T) {
		orphanVerifier := &fakeVerifier{
			subjects: map[string]string{"orphan-token": "ghost"},
		}
		handler, _ := authChain(orphanVerifier, loader)

		req := httptest.NewRequest("GET", "/users/me", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "orphan-token"})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should accept the session cookie", func(t *testing.T) {
		handler, seen := authChain(verifier, loader)

		req := httptest.NewRequest("GET", "/users/me", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "good-token"})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u-1", seen.ID)
		assert.Equal(t, "gardener@example.com", seen.Email)
	})

	t.Run("Should accept a bearer header without a cookie", func(t *testing.T) {
		handler, seen := authChain(verifier, loader)

		req := httptest.NewRequest("GET", "/users/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u-1", seen.ID)
	})
}

func TestRequireAdmin(t *testing.T) {
	verifier := &fakeVerifier{subjects: map[string]string{
		"user-token":  "u-1",
		"admin-token": "u-2",
	}}
	loader := &fakeLoader{users: map[string]*SessionUser{
		"u-1": {ID: "u-1", IsUser: true},
		"u-2": {ID: "u-2", IsUser: true, IsAdmin: true},
	}}

	t.Run("Should forbid an authenticated non-admin", func(t *testing.T) {
		handler, _ := authChain(verifier, loader, RequireAdmin)

		req := httptest.NewRequest("GET", "/admin/stats", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "user-token"})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Should pass an admin through", func(t *testing.T) {
		handler, seen := authChain(verifier, loader, RequireAdmin)

		req := httptest.NewRequest("GET", "/admin/stats", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "admin-token"})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, seen.IsAdmin)
	})

	t.Run("Should stay a 401 when no session exists at all", func(t *testing.T) {
		handler, _ := authChain(verifier, loader, RequireAdmin)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/stats", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestExtractToken(t *testing.T) {
	t.Run("Should prefer the cookie over the header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "from-cookie"})
		req.Header.Set("Authorization", "Bearer from-header")

		assert.Equal(t, "from-cookie", ExtractToken(req, testCookie))
	})

	t.Run("Should fall back to a bearer header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer from-header")

		assert.Equal(t, "from-header", ExtractToken(req, testCookie))
	})

	t.Run("Should ignore non-bearer schemes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		assert.Empty(t, ExtractToken(req, testCookie))
	})
}
