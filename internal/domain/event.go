package domain

import (
	"context"
	"time"
)

// Event is a bookable event with a fixed seat capacity.
// swagger:model Event
type Event struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	TotalSeats int       `json:"total_seats"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the store.
func NewEvent(name string, totalSeats int, createdAt time.Time) *Event {
	return &Event{
		Name:       name,
		TotalSeats: totalSeats,
		CreatedAt:  createdAt,
	}
}

// EventAvailability is an event together with its derived seat counts.
type EventAvailability struct {
	Event          *Event
	BookedSeats    int
	AvailableSeats int
}

// NewEventAvailability derives the available seat count from the event capacity and the booked count.
func NewEventAvailability(event *Event, booked int) *EventAvailability {
	return &EventAvailability{
		Event:          event,
		BookedSeats:    booked,
		AvailableSeats: event.TotalSeats - booked,
	}
}

// EventRepository defines read access to event storage.
type EventRepository interface {
	List(ctx context.Context) ([]*Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
}

// EventService defines the read-side operations on events.
type EventService interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	// GetAvailability returns the event with its booked and available seat counts.
	// The counts are a read-committed snapshot and do not guarantee a later reservation succeeds.
	GetAvailability(ctx context.Context, eventID int64) (*EventAvailability, error)
}
