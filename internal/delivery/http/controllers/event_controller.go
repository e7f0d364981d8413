package controllers

import (
	"log/slog"
	"net/http"

	"seatbooking/internal/delivery/http/helpers"
	"seatbooking/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEventsResponse is the body of GET /events.
type ListEventsResponse struct {
	Events []*domain.Event `json:"events"`
}

// EventAvailabilityResponse is the body of GET /events/{id}.
type EventAvailabilityResponse struct {
	Event          *domain.Event `json:"event"`
	AvailableSeats int           `json:"available_seats"`
	BookedSeats    int           `json:"booked_seats"`
}

// ListEvents godoc
// @Summary List events
// @Description Returns every event, newest first.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListEventsResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ListEventsResponse{Events: events})
}

// GetEvent godoc
// @Summary Get an event with seat availability
// @Description Returns the event with its booked and available seat counts. The counts are a snapshot and may be stale by the time a reservation is attempted.
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.EventAvailabilityResponse
// @Failure 404 {object} helpers.ErrorResponse "Event does not exist or id is not an integer"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, "event not found", "")
		return
	}

	availability, err := c.Service.GetAvailability(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventAvailabilityResponse{
		Event:          availability.Event,
		AvailableSeats: availability.AvailableSeats,
		BookedSeats:    availability.BookedSeats,
	})
}
