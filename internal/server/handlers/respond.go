package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/auth"
	"github.com/seamline/backoffice/internal/server/storage"
	"github.com/seamline/backoffice/pkg/api"
)

// errInvalidStatus rejects status values outside the known set on
// partial updates.
var errInvalidStatus = errors.New("invalid status")

// mergeStatus applies an optional wire-level status onto dst. A nil s
// leaves dst unchanged.
func mergeStatus(dst *models.Status, s *string) error {
	if s == nil {
		return nil
	}
	status := models.Status(*s)
	if !status.Valid() {
		return errInvalidStatus
	}
	*dst = status
	return nil
}

// sendJSON writes the response envelope with the given status code.
func sendJSON(logger *slog.Logger, w http.ResponseWriter, statusCode int, resp api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendData writes a single-object envelope.
func sendData(logger *slog.Logger, w http.ResponseWriter, statusCode int, data any, message string) {
	sendJSON(logger, w, statusCode, api.Response{Data: data, Message: message})
}

// sendList writes a paged collection envelope.
func sendList(logger *slog.Logger, w http.ResponseWriter, data any, length, page, pageSize, total int) {
	sendJSON(logger, w, http.StatusOK, api.Response{
		Data:     data,
		Message:  api.MessageSuccess,
		Length:   length,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

// sendError writes an error envelope with only a message.
func sendError(logger *slog.Logger, w http.ResponseWriter, statusCode int, message string) {
	sendJSON(logger, w, statusCode, api.Response{Message: message})
}

// statusFromError maps service and storage failures onto HTTP status
// codes. Every sentinel keeps its own code so API clients can tell
// "not found" from "bad input" from "rejected credentials".
func statusFromError(err error) int {
	switch {
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, storage.ErrUserNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredential),
		errors.Is(err, auth.ErrTokenNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrUserPending),
		errors.Is(err, auth.ErrUserDeleted):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrUserActive),
		errors.Is(err, auth.ErrNoPendingOTP),
		errors.Is(err, auth.ErrOTPMismatch),
		errors.Is(err, storage.ErrInvalidQuery),
		errors.Is(err, storage.ErrUserAlreadyExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// sendServiceError maps err to a status code and writes the envelope.
// Internal failures are logged and hidden behind a generic message.
func sendServiceError(logger *slog.Logger, w http.ResponseWriter, err error) {
	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("internal error", slog.Any("error", err))
		message = "internal server error"
	}
	sendError(logger, w, status, message)
}

// decodeBody parses a JSON request body into dst, rejecting garbage
// with a 400 and reporting whether decoding succeeded.
func decodeBody(logger *slog.Logger, w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.ErrorContext(r.Context(), "failed to decode request body", slog.Any("error", err))
		sendError(logger, w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// listQueryFromRequest converts the wire-level find body into the
// storage query.
func listQueryFromRequest(req api.ListRequest) storage.ListQuery {
	return storage.ListQuery{
		Status:        req.Filter.Status,
		Field:         req.Filter.Field,
		Values:        req.Filter.Items,
		Page:          req.Paginator.Page,
		PageSize:      req.Paginator.PageSize,
		Term:          req.Search.Term,
		SortColumn:    req.Sorting.Column,
		SortDirection: req.Sorting.Direction,
	}
}

// pageOf normalizes the paginator echoed back in list envelopes.
func pageOf(req api.ListRequest) (page, pageSize int) {
	page, pageSize = req.Paginator.Page, req.Paginator.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 10
	}
	return page, pageSize
}

// pathID extracts an integer path parameter, writing a 400 when it is
// missing or not a number.
func pathID(logger *slog.Logger, w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		sendError(logger, w, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return id, true
}
