// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package respond writes the JSON envelopes returned by every handler.

Success bodies look like {"data": ...} and list bodies add a "meta" block
with skip, limit and the number returned. Failures look like
{"error": ..., "code": ..., "details": [...], "request_id": ...}.
*/
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/internal/platform/ctxutil"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

type dataEnvelope struct {
	Data any              `json:"data"`
	Meta *pagination.Meta `json:"meta,omitempty"`
}

type errorEnvelope struct {
	Error     string              `json:"error"`
	Code      string              `json:"code"`
	Details   []apperr.FieldError `json:"details,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

func write(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		slog.Default().Warn("response_encode_failed", slog.Any("error", err))
	}
}

// Data writes {"data": data} with an arbitrary status. Health probes use it
// to answer 503 with a body.
func Data(writer http.ResponseWriter, status int, data any) {
	write(writer, status, dataEnvelope{Data: data})
}

func OK(writer http.ResponseWriter, data any) {
	Data(writer, http.StatusOK, data)
}

func Created(writer http.ResponseWriter, data any) {
	Data(writer, http.StatusCreated, data)
}

// Paginated writes a page of results with its [pagination.Meta].
func Paginated(writer http.ResponseWriter, data any, metadata pagination.Meta) {
	write(writer, http.StatusOK, dataEnvelope{Data: data, Meta: &metadata})
}

func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

/*
Error maps err onto the error envelope.

Anything without an [apperr.AppError] in its chain is reported as a 500 and
logged with the request id; the client never sees the underlying message.
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	context := request.Context()
	requestID := ctxutil.GetRequestID(context)
	logger := ctxutil.GetLogger(context)

	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}
	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(context, "request_failed",
			slog.String("code", appError.Code),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
	}

	write(writer, appError.HTTPStatus, errorEnvelope{
		Error:     appError.Message,
		Code:      appError.Code,
		Details:   appError.Details,
		RequestID: requestID,
	})
}
