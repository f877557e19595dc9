// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package catalog

import (
	"net/http"

	requestutil "github.com/gosanz/mangashelfapi/internal/platform/request"
	"github.com/gosanz/mangashelfapi/internal/platform/respond"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

// # Series Endpoints

// GET /api/v1/series.
func (handler *Handler) listSeries(writer http.ResponseWriter, request *http.Request) {
	window := pagination.FromRequest(request, pagination.Catalog)

	list, err := handler.service.ListSeries(request.Context(), window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list, pagination.NewMeta(window, len(list)))
}

/*
GET /api/v1/series/search?q=.

Description: Case-insensitive substring match on title or author.
*/
func (handler *Handler) searchSeries(writer http.ResponseWriter, request *http.Request) {
	term, err := requestutil.RequiredQuery(request, FieldQuery)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	window := pagination.FromRequest(request, pagination.Search)

	list, err := handler.service.SearchSeries(request.Context(), term, window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list, pagination.NewMeta(window, len(list)))
}

// GET /api/v1/series/publisher/{id}.
func (handler *Handler) listSeriesByPublisher(writer http.ResponseWriter, request *http.Request) {
	publisherID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	window := pagination.FromRequest(request, pagination.Catalog)

	list, err := handler.service.ListSeriesByPublisher(request.Context(), publisherID, window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list, pagination.NewMeta(window, len(list)))
}

// GET /api/v1/series/{id}.
func (handler *Handler) getSeries(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	series, err := handler.service.GetSeries(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, series)
}

/*
POST /api/v1/series.

Response:
  - 201: Series
  - 404: publisher_id does not exist
*/
func (handler *Handler) createSeries(writer http.ResponseWriter, request *http.Request) {
	var input SeriesInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	series, err := handler.service.CreateSeries(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, series)
}

/*
DELETE /api/v1/series/{id}.

Description: Removes the series, its volumes and every collection entry
referencing those volumes.
*/
func (handler *Handler) deleteSeries(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSeries(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
