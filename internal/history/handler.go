// PlantDiseaseDetector | 2026
// handler.go

package history

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/middleware"
)

type ItemResponse struct {
	DiseasesName   string    `json:"diseases_name"`
	Time           time.Time `json:"time"`
	Reason         string    `json:"reason"`
	Recommendation string    `json:"recommendation"`
	ImageURL       string    `json:"image_url"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/history", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/all", h.ListAll)
	})
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	entries, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	items := make([]ItemResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, ItemResponse{
			DiseasesName:   e.DiseaseName,
			Time:           e.CreatedAt,
			Reason:         e.Reason,
			Recommendation: e.Recommendations,
			ImageURL:       e.ImagePath,
		})
	}

	core.OK(w, items)
}
