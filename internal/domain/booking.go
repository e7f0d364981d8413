package domain

import (
	"context"
	"time"
)

// Booking is a single seat held by a user for an event.
// swagger:model Booking
type Booking struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBooking returns a new Booking. ID and CreatedAt are assigned by the store on insert.
func NewBooking(eventID int64, userID string) *Booking {
	return &Booking{
		EventID: eventID,
		UserID:  userID,
	}
}

// EventSummary is the subset of an event embedded in a user's booking listing.
// swagger:model EventSummary
type EventSummary struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	TotalSeats int    `json:"total_seats"`
}

// BookingWithEvent bundles a booking with a summary of its event.
// swagger:model BookingWithEvent
type BookingWithEvent struct {
	Booking
	Event EventSummary `json:"events"`
}

// Reservation is the outcome of a successful reserve call.
type Reservation struct {
	Booking *Booking
	Event   *Event
	Message string
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	// Reserve atomically checks that the event exists, that the user holds no booking for it,
	// and that a seat is free, then inserts the booking. It returns ErrNotFound, ErrAlreadyBooked
	// or ErrSoldOut without writing anything when a check fails.
	Reserve(ctx context.Context, booking *Booking) (*Event, error)
	CountByEventID(ctx context.Context, eventID int64) (int, error)
	ListByUserID(ctx context.Context, userID string) ([]*BookingWithEvent, error)
	// CountByUserSince returns the number of bookings per user created at or after since.
	CountByUserSince(ctx context.Context, since time.Time) ([]UserBookingCount, error)
}

// BookingPublisher announces committed bookings to other systems.
type BookingPublisher interface {
	PublishReserved(ctx context.Context, booking *Booking, event *Event) error
}

// BookingService defines booking operations exposed to clients.
type BookingService interface {
	Reserve(ctx context.Context, eventID int64, userID string) (*Reservation, error)
	ListUserBookings(ctx context.Context, userID string) ([]*BookingWithEvent, error)
}
