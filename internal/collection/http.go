// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package collection

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	requestutil "github.com/gosanz/mangashelfapi/internal/platform/request"
	"github.com/gosanz/mangashelfapi/internal/platform/respond"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

// # Handler Implementation

// Handler exposes the caller's own ledger. The server mounts it behind the
// active-user guard, so every route acts on the token's user id.
type Handler struct {
	service *Service
}

// NewHandler constructs a new collection [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register adds the ledger routes to a router mounted at /collection.
// Static segments are registered by the caller first (statistics), so
// /{volumeID} only sees numeric ids.
func (handler *Handler) Register(router chi.Router) {
	router.Post("/", handler.addEntry)
	router.Get("/", handler.list(FilterNone))
	router.Get("/owned", handler.list(FilterOwned))
	router.Get("/wishlist", handler.list(FilterWishlist))
	router.Get("/reading", handler.list(FilterReading))

	router.Get("/{volumeID}", handler.getEntry)
	router.Patch("/{volumeID}", handler.updateEntry)
	router.Delete("/{volumeID}", handler.removeEntry)
}

/*
POST /api/v1/collection.

Request (JSON): AddInput

Response:
  - 201: Entry with its volume
  - 404: volume does not exist
  - 409: volume already in the collection
*/
func (handler *Handler) addEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AddInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.AddEntry(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
GET /api/v1/collection[/owned|/wishlist|/reading].

Request:
  - skip: int (default 0)
  - limit: int (default 100, max 100)
*/
func (handler *Handler) list(filter Filter) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		window := pagination.FromRequest(request, pagination.Collection)

		entries, err := handler.service.ListByUser(request.Context(), userID, filter, window)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.Paginated(writer, entries, pagination.NewMeta(window, len(entries)))
	}
}

// GET /api/v1/collection/{volumeID}.
func (handler *Handler) getEntry(writer http.ResponseWriter, request *http.Request) {
	userID, volumeID, err := entryKey(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, found, err := handler.service.GetEntry(request.Context(), userID, volumeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !found {
		respond.Error(writer, request, apperr.NotFound("Collection entry"))
		return
	}

	respond.OK(writer, entry)
}

/*
PATCH /api/v1/collection/{volumeID}.

Request (JSON): Patch. Omitted keys are left untouched; null clears a
nullable field; null on a flag is rejected.
*/
func (handler *Handler) updateEntry(writer http.ResponseWriter, request *http.Request) {
	userID, volumeID, err := entryKey(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.UpdateEntry(request.Context(), userID, volumeID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// DELETE /api/v1/collection/{volumeID}.
func (handler *Handler) removeEntry(writer http.ResponseWriter, request *http.Request) {
	userID, volumeID, err := entryKey(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	removed, err := handler.service.RemoveEntry(request.Context(), userID, volumeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !removed {
		respond.Error(writer, request, apperr.NotFound("Collection entry"))
		return
	}

	respond.NoContent(writer)
}

func entryKey(request *http.Request) (string, int64, error) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		return "", 0, err
	}

	volumeID, err := requestutil.Int64Param(request, "volumeID")
	if err != nil {
		return "", 0, err
	}
	return userID, volumeID, nil
}
