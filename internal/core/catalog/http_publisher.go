// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package catalog

import (
	"net/http"

	requestutil "github.com/gosanz/mangashelfapi/internal/platform/request"
	"github.com/gosanz/mangashelfapi/internal/platform/respond"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

// # Publisher Endpoints

/*
GET /api/v1/publishers.

Request:
  - skip: int (default 0)
  - limit: int (default 100, max 100)

Response:
  - 200: []Publisher ordered by name
*/
func (handler *Handler) listPublishers(writer http.ResponseWriter, request *http.Request) {
	window := pagination.FromRequest(request, pagination.Catalog)

	publishers, err := handler.service.ListPublishers(request.Context(), window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, publishers, pagination.NewMeta(window, len(publishers)))
}

/*
GET /api/v1/publishers/search?q=.

Response:
  - 200: []Publisher whose name contains q
  - 400: ValidationError when q is missing
*/
func (handler *Handler) searchPublishers(writer http.ResponseWriter, request *http.Request) {
	term, err := requestutil.RequiredQuery(request, FieldQuery)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	window := pagination.FromRequest(request, pagination.Search)

	publishers, err := handler.service.SearchPublishers(request.Context(), term, window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, publishers, pagination.NewMeta(window, len(publishers)))
}

// GET /api/v1/publishers/{id}.
func (handler *Handler) getPublisher(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	publisher, err := handler.service.GetPublisher(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, publisher)
}

/*
POST /api/v1/publishers.

Request (JSON): PublisherInput

Response:
  - 201: Publisher
  - 409: name already taken
*/
func (handler *Handler) createPublisher(writer http.ResponseWriter, request *http.Request) {
	var input PublisherInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	publisher, err := handler.service.CreatePublisher(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, publisher)
}
