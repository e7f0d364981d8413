package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"seatbooking/internal/delivery/http/helpers"
	"seatbooking/internal/domain"
)

func TestBookingController_Reserve(t *testing.T) {
	booking := &domain.Booking{ID: 5, EventID: 1, UserID: "u1", CreatedAt: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)}
	ok := &domain.Reservation{
		Booking: booking,
		Event:   &domain.Event{ID: 1, Name: "Conf", TotalSeats: 3},
		Message: "Successfully reserved a seat for Conf",
	}

	tests := []struct {
		name      string
		body      string
		svcErr    error
		wantCode  int
		wantError string
		wantCalls int
	}{
		{"created", `{"event_id":1,"user_id":" u1 "}`, nil, http.StatusCreated, "", 1},
		{"missing user", `{"event_id":1}`, nil, http.StatusBadRequest, "user_id is required", 0},
		{"missing event", `{"user_id":"u1"}`, nil, http.StatusBadRequest, "event_id is required", 0},
		{"both missing", `{}`, nil, http.StatusBadRequest, "event_id is required; user_id is required", 0},
		{"event id as string", `{"event_id":"1","user_id":"u1"}`, nil, http.StatusBadRequest, "invalid request body", 0},
		{"trailing data", `{"event_id":1,"user_id":"u1"} junk`, nil, http.StatusBadRequest, "invalid request body", 0},
		{"unknown field", `{"event_id":1,"user_id":"u1","seats":2}`, nil, http.StatusBadRequest, "invalid request body", 0},
		{"event not found", `{"event_id":9,"user_id":"u1"}`, domain.ErrNotFound, http.StatusNotFound, "event not found", 1},
		{"already booked", `{"event_id":1,"user_id":"u1"}`, domain.ErrAlreadyBooked, http.StatusConflict, domain.ErrAlreadyBooked.Error(), 1},
		{"sold out", `{"event_id":1,"user_id":"u1"}`, domain.ErrSoldOut, http.StatusConflict, domain.ErrSoldOut.Error(), 1},
		{"store failure", `{"event_id":1,"user_id":"u1"}`, errors.New("reserve seat: broken pipe"), http.StatusInternalServerError, "internal server error", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{reservation: ok, err: tt.svcErr}
			ctrl := NewBookingController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPost, "/reserve", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			ctrl.Reserve(w, req)

			require.Equal(t, tt.wantCode, w.Code)
			require.Equal(t, tt.wantCalls, svc.calls)
			if tt.wantCode == http.StatusCreated {
				require.Equal(t, int64(1), svc.gotEventID)
				require.Equal(t, "u1", svc.gotUserID)
				var resp ReserveResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.True(t, resp.Success)
				require.Equal(t, int64(5), resp.Booking.ID)
				require.Equal(t, "Successfully reserved a seat for Conf", resp.Message)
				return
			}
			var resp helpers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, tt.wantError, resp.Error)
			if tt.wantCode == http.StatusInternalServerError {
				require.Contains(t, resp.Details, "broken pipe")
			}
		})
	}
}

func TestBookingController_ListUserBookings(t *testing.T) {
	item := &domain.BookingWithEvent{
		Booking: domain.Booking{ID: 3, EventID: 2, UserID: "u1"},
		Event:   domain.EventSummary{ID: 2, Name: "Conf", TotalSeats: 10},
	}

	t.Run("success", func(t *testing.T) {
		svc := &mockBookingService{bookings: []*domain.BookingWithEvent{item}}
		ctrl := NewBookingController(testLogger, svc)
		req := httptest.NewRequest(http.MethodGet, "/user/u1/bookings", nil)
		req.SetPathValue("id", "u1")
		w := httptest.NewRecorder()

		ctrl.ListUserBookings(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "u1", svc.gotUserID)

		var raw map[string][]map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		require.Len(t, raw["bookings"], 1)
		got := raw["bookings"][0]
		require.Equal(t, float64(3), got["id"])
		require.Equal(t, map[string]any{"id": float64(2), "name": "Conf", "total_seats": float64(10)}, got["events"])
	})

	t.Run("service error", func(t *testing.T) {
		ctrl := NewBookingController(testLogger, &mockBookingService{err: errors.New("list bookings: timeout")})
		req := httptest.NewRequest(http.MethodGet, "/user/u1/bookings", nil)
		req.SetPathValue("id", "u1")
		w := httptest.NewRecorder()

		ctrl.ListUserBookings(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
