// PlantDiseaseDetector | 2026
// handler.go

package user

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
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes wires the /users subtree. Logout is passed in from the
// auth handler because clearing the cookie needs no session.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	logout http.HandlerFunc,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/logout", logout)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/me", h.GetMe)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)
			r.Get("/all", h.ListAll)
			r.Put("/change_role", h.ChangeRole)
		})
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.service.GetMe(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.JSONError(w, core.UnauthorizedError("account no longer exists"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToProfileResponse(user))
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListAll(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPublicUserList(users))
}

// ChangeRole flips role flags on the account keyed by email. A missing
// account surfaces as 409, not 404.
func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.UnprocessableEntity(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	if _, err := h.service.ChangeRole(r.Context(), req); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.Conflict(w, "no account with this email")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, MessageResponse{Message: "roles updated"})
}
