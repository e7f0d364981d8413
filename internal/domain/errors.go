package domain

import "errors"

// Sentinel errors shared by services and controllers.
var (
	// ErrInvalidInput is returned when a request fails validation. It is wrapped with the reason.
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	// ErrAlreadyBooked is returned when the user already holds a booking for the event.
	ErrAlreadyBooked = errors.New("user has already booked this event")
	// ErrSoldOut is returned when every seat of the event is taken.
	ErrSoldOut = errors.New("no seats available for this event")
)
