// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gosanz/mangashelfapi/internal/platform/middleware"
	requestutil "github.com/gosanz/mangashelfapi/internal/platform/request"
	"github.com/gosanz/mangashelfapi/internal/platform/respond"
	"github.com/gosanz/mangashelfapi/internal/platform/sec"
	"github.com/gosanz/mangashelfapi/internal/platform/validate"
)

// # Handler Implementation

// Handler exposes the caller's own account and the admin purge endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// MeRoutes serves /users. The server mounts it behind the active-user guard.
func (handler *Handler) MeRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.getMe)
	router.Patch("/me", handler.updateMe)
	router.Delete("/me", handler.deleteMe)
	router.Post("/me/change-password", handler.changePassword)

	return router
}

// AdminRoutes serves /admin/users.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/purge-candidates", handler.listPurgeCandidates)
	router.Delete("/{id}", handler.purge)

	return router
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// GET /api/v1/users/me.
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/me.

Request (JSON): ProfileUpdate; omitted keys are left untouched.

Response:
  - 200: updated profile
  - 409: username or email taken
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var update ProfileUpdate
	if err := requestutil.DecodeJSON(request, &update); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), userID, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// DELETE /api/v1/users/me. Starts the grace period; 204.
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.SoftDelete(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/users/me/change-password.

Response:
  - 204: password replaced, refresh sessions revoked
  - 401: current password is wrong
  - 409: INVALID_STATE for accounts without a password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// GET /api/v1/admin/users/purge-candidates.
func (handler *Handler) listPurgeCandidates(writer http.ResponseWriter, request *http.Request) {
	candidates, err := handler.service.ListPurgeCandidates(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, candidates)
}

/*
DELETE /api/v1/admin/users/{id}.

Response:
  - 204: account and collection removed
  - 404: no such account
  - 409: CONFLICT within the grace period, INVALID_STATE when never deleted
*/
func (handler *Handler) purge(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.UUID("id", userID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Purge(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
