// PlantDiseaseDetector | 2026
// handler_test.go

package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeChecker struct {
	err error
}

func (f *fakeChecker) Ping(_ context.Context) error {
	return f.err
}

func TestHandler_Liveness(t *testing.T) {
	t.Run("Should report ok while running", func(t *testing.T) {
		h := NewHandler(&fakeChecker{}, &fakeChecker{})

		rec := httptest.NewRecorder()
		h.Liveness(rec, httptest.NewRequest("GET", "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ok")
	})

	t.Run("Should fail once shutdown begins", func(t *testing.T) {
		h := NewHandler(&fakeChecker{}, &fakeChecker{})
		h.BeginShutdown()

		rec := httptest.NewRecorder()
		h.Liveness(rec, httptest.NewRequest("GET", "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHandler_Readiness(t *testing.T) {
	t.Run("Should report ok when all dependencies answer", func(t *testing.T) {
		h := NewHandler(&fakeChecker{}, &fakeChecker{})

		rec := httptest.NewRecorder()
		h.Readiness(rec, httptest.NewRequest("GET", "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Should degrade when a dependency fails", func(t *testing.T) {
		h := NewHandler(
			&fakeChecker{err: errors.New("connection refused")},
			&fakeChecker{},
		)

		rec := httptest.NewRecorder()
		h.Readiness(rec, httptest.NewRequest("GET", "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "degraded")
		assert.Contains(t, rec.Body.String(), "connection refused")
	})
}
