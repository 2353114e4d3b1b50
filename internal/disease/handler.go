// PlantDiseaseDetector | 2026
// handler.go

package disease

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/middleware"
)

type Handler struct {
	service       *Service
	validator     *validator.Validate
	catalogPath   string
	maxUploadSize int64
}

func NewHandler(
	service *Service,
	catalogPath string,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		service:       service,
		validator:     validator.New(validator.WithRequiredStructEnabled()),
		catalogPath:   catalogPath,
		maxUploadSize: maxUploadSize,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/diseases", func(r chi.Router) {
		r.Get("/all", h.ListAll)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/upload", h.Upload)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)
			r.Post("/create", h.Create)
			r.Post("/create/init", h.SeedCatalog)
		})
	})
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	diseases, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToDiseaseResponseList(diseases))
}

// Upload accepts a multipart leaf photo and runs the detection
// pipeline for the authenticated user.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		core.UnprocessableEntity(w, "multipart field 'file' is required")
		return
	}
	defer file.Close() //nolint:errcheck // read-only part

	resp, err := h.service.Detect(r.Context(), userID, header.Filename, file)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	d, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("disease name"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToDiseaseResponse(d))
}

// SeedCatalog bulk-loads the reference catalog. An unreadable source
// is a single 500; individual record failures only show in the counts.
func (h *Handler) SeedCatalog(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.SeedCatalog(r.Context(), h.catalogPath)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, SeedResponse{
		Status:         "ok",
		Created:        summary.Created,
		Duplicates:     summary.Duplicates,
		TotalProcessed: summary.Total,
	})
}
