// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package catalog

import (
	"net/http"

	requestutil "github.com/gosanz/mangashelfapi/internal/platform/request"
	"github.com/gosanz/mangashelfapi/internal/platform/respond"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

// bulkVolumesRequest is the body of POST /volumes/bulk.
type bulkVolumesRequest struct {
	Volumes []VolumeInput `json:"volumes"`
}

// # Volume Endpoints

// GET /api/v1/volumes.
func (handler *Handler) listVolumes(writer http.ResponseWriter, request *http.Request) {
	window := pagination.FromRequest(request, pagination.Catalog)

	volumes, err := handler.service.ListVolumes(request.Context(), window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, volumes, pagination.NewMeta(window, len(volumes)))
}

// GET /api/v1/volumes/search?q=.
func (handler *Handler) searchVolumes(writer http.ResponseWriter, request *http.Request) {
	term, err := requestutil.RequiredQuery(request, FieldQuery)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	window := pagination.FromRequest(request, pagination.Search)

	volumes, err := handler.service.SearchVolumes(request.Context(), term, window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, volumes, pagination.NewMeta(window, len(volumes)))
}

// GET /api/v1/volumes/isbn/{isbn}.
func (handler *Handler) getVolumeByISBN(writer http.ResponseWriter, request *http.Request) {
	volume, err := handler.service.GetVolumeByISBN(request.Context(), requestutil.Param(request, "isbn"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, volume)
}

/*
GET /api/v1/volumes/series/{id}.

Request:
  - limit: int (default 200, max 200) so a long series fits one page
*/
func (handler *Handler) listVolumesBySeries(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	window := pagination.FromRequest(request, pagination.SeriesVolumes)

	volumes, err := handler.service.ListVolumesBySeries(request.Context(), seriesID, window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, volumes, pagination.NewMeta(window, len(volumes)))
}

// GET /api/v1/volumes/{id}.
func (handler *Handler) getVolume(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	volume, err := handler.service.GetVolume(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, volume)
}

/*
POST /api/v1/volumes.

Response:
  - 201: Volume
  - 404: series_id does not exist
  - 409: duplicate ISBN or volume number
*/
func (handler *Handler) createVolume(writer http.ResponseWriter, request *http.Request) {
	var input VolumeInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	volume, err := handler.service.CreateVolume(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, volume)
}

/*
POST /api/v1/volumes/bulk.

Request (JSON): {"volumes": [VolumeInput, ...]}

Description: All volumes are stored in one transaction or none are.
*/
func (handler *Handler) createVolumes(writer http.ResponseWriter, request *http.Request) {
	var body bulkVolumesRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	volumes, err := handler.service.CreateVolumes(request.Context(), body.Volumes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, volumes)
}

// DELETE /api/v1/volumes/{id}.
func (handler *Handler) deleteVolume(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteVolume(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
