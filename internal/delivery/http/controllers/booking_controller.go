package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"seatbooking/internal/delivery/http/helpers"
	"seatbooking/internal/domain"
)

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// ReserveRequest is the request body for POST /reserve.
type ReserveRequest struct {
	EventID int64  `json:"event_id"`
	UserID  string `json:"user_id"`
}

// Validate implements helpers.Validator.
func (r *ReserveRequest) Validate() []string {
	var errs []string
	if r.EventID <= 0 {
		errs = append(errs, "event_id is required")
	}
	r.UserID = strings.TrimSpace(r.UserID)
	if r.UserID == "" {
		errs = append(errs, "user_id is required")
	}
	return errs
}

// ReserveResponse is the body of a successful POST /reserve.
type ReserveResponse struct {
	Success bool            `json:"success"`
	Booking *domain.Booking `json:"booking"`
	Message string          `json:"message"`
}

// UserBookingsResponse is the body of GET /user/{id}/bookings.
type UserBookingsResponse struct {
	Bookings []*domain.BookingWithEvent `json:"bookings"`
}

// Reserve godoc
// @Summary Reserve a seat
// @Description Books one seat of the event for the user. At most one booking per user and event; a retry after success returns 409.
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body controllers.ReserveRequest true "Event and user"
// @Success 201 {object} controllers.ReserveResponse
// @Failure 400 {object} helpers.ErrorResponse "Missing or malformed event_id or user_id"
// @Failure 404 {object} helpers.ErrorResponse "Event not found"
// @Failure 409 {object} helpers.ErrorResponse "Already booked or sold out"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /reserve [post]
func (c *BookingController) Reserve(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := c.Service.Reserve(r.Context(), req.EventID, req.UserID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, ReserveResponse{
		Success: true,
		Booking: res.Booking,
		Message: res.Message,
	})
}

// ListUserBookings godoc
// @Summary List a user's bookings
// @Description Returns the user's bookings, newest first, each with a summary of its event.
// @Tags bookings
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} controllers.UserBookingsResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /user/{id}/bookings [get]
func (c *BookingController) ListUserBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := c.Service.ListUserBookings(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, UserBookingsResponse{Bookings: bookings})
}
