package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"seatbooking/internal/domain"
	"seatbooking/internal/monitoring"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	publisher      domain.BookingPublisher
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService. publisher is notified after every committed reservation.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	publisher domain.BookingPublisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		publisher:      publisher,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// Reserve books one seat of eventID for userID. Validation happens before the store is touched.
// A retry after a successful reservation returns domain.ErrAlreadyBooked.
func (s *bookingService) Reserve(ctx context.Context, eventID int64, userID string) (res *domain.Reservation, err error) {
	defer func() { monitoring.ObserveReservation(err) }()

	userID = strings.TrimSpace(userID)
	if eventID <= 0 {
		return nil, fmt.Errorf("%w: event_id is required", domain.ErrInvalidInput)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}

	reserveCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking := domain.NewBooking(eventID, userID)
	event, err := s.bookingRepo.Reserve(reserveCtx, booking)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrAlreadyBooked) ||
			errors.Is(err, domain.ErrSoldOut) {
			return nil, err
		}
		return nil, fmt.Errorf("reserve seat: %w", err)
	}

	s.logger.InfoContext(ctx, "seat reserved",
		"booking_id", booking.ID,
		"event_id", eventID,
		"user_id", userID,
	)

	// The booking is committed; a lost notification must not fail the request.
	if err := s.publisher.PublishReserved(context.WithoutCancel(ctx), booking, event); err != nil {
		s.logger.WarnContext(ctx, "publish reservation failed", "booking_id", booking.ID, "err", err)
	}

	return &domain.Reservation{
		Booking: booking,
		Event:   event,
		Message: fmt.Sprintf("Successfully reserved a seat for %s", event.Name),
	}, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID string) ([]*domain.BookingWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	bookings, err := s.bookingRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.BookingWithEvent{}
	}
	return bookings, nil
}
