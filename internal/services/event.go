package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"seatbooking/internal/domain"
)

// errNegativeAvailability signals that an event holds more bookings than seats.
var errNegativeAvailability = errors.New("booked seats exceed event capacity")

type eventService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetAvailability(ctx context.Context, eventID int64) (*domain.EventAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	booked, err := s.bookingRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	availability := domain.NewEventAvailability(event, booked)
	if availability.AvailableSeats < 0 {
		s.logger.ErrorContext(ctx, "event overbooked",
			"event_id", eventID,
			"total_seats", event.TotalSeats,
			"booked_seats", booked,
		)
		return nil, fmt.Errorf("event %d: %w", eventID, errNegativeAvailability)
	}
	return availability, nil
}
