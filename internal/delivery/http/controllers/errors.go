package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"seatbooking/internal/delivery/http/helpers"
	"seatbooking/internal/domain"
)

// writeServiceError maps domain sentinels to status codes. Anything else is logged and returned as 500
// with the underlying error as details.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, "event not found", "")
	case errors.Is(err, domain.ErrAlreadyBooked):
		helpers.WriteJSONError(w, http.StatusConflict, domain.ErrAlreadyBooked.Error(), "")
	case errors.Is(err, domain.ErrSoldOut):
		helpers.WriteJSONError(w, http.StatusConflict, domain.ErrSoldOut.Error(), "")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error", err.Error())
	}
}
