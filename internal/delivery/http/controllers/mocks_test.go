package controllers

import (
	"context"
	"io"
	"log/slog"

	"seatbooking/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type mockEventService struct {
	events       []*domain.Event
	availability *domain.EventAvailability
	err          error
	gotID        int64
	calls        int
}

func (m *mockEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	m.calls++
	return m.events, m.err
}

func (m *mockEventService) GetAvailability(ctx context.Context, eventID int64) (*domain.EventAvailability, error) {
	m.calls++
	m.gotID = eventID
	if m.err != nil {
		return nil, m.err
	}
	return m.availability, nil
}

type mockBookingService struct {
	reservation *domain.Reservation
	bookings    []*domain.BookingWithEvent
	err         error
	gotEventID  int64
	gotUserID   string
	calls       int
}

func (m *mockBookingService) Reserve(ctx context.Context, eventID int64, userID string) (*domain.Reservation, error) {
	m.calls++
	m.gotEventID, m.gotUserID = eventID, userID
	if m.err != nil {
		return nil, m.err
	}
	return m.reservation, nil
}

func (m *mockBookingService) ListUserBookings(ctx context.Context, userID string) ([]*domain.BookingWithEvent, error) {
	m.calls++
	m.gotUserID = userID
	if m.err != nil {
		return nil, m.err
	}
	return m.bookings, nil
}

type mockLeaderboardService struct {
	leaderboard *domain.Leaderboard
	err         error
	gotPeriod   domain.Period
	gotLimit    int
	calls       int
}

func (m *mockLeaderboardService) GetLeaderboard(ctx context.Context, period domain.Period, limit int) (*domain.Leaderboard, error) {
	m.calls++
	m.gotPeriod, m.gotLimit = period, limit
	if m.err != nil {
		return nil, m.err
	}
	return m.leaderboard, nil
}
