package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"seatbooking/internal/domain"
)

// uniqueViolation is the SQLSTATE raised when bookings_event_user_key rejects an insert.
const uniqueViolation = "23505"

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

// Reserve runs the existence, duplicate and capacity checks and the insert in one transaction.
//
// The event row is locked with SELECT ... FOR UPDATE before anything else is read, so two
// reservations for the same event cannot both observe a free seat: the second one blocks
// until the first commits or rolls back and then counts the committed booking. Reservations
// for different events lock different rows and do not wait on each other. The unique
// constraint on (event_id, user_id) backs the duplicate check in case a booking row is ever
// written outside this path.
func (r *bookingRepository) Reserve(ctx context.Context, b *domain.Booking) (ev *domain.Event, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ev = &domain.Event{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, name, total_seats, created_at
		FROM events
		WHERE id = $1
		FOR UPDATE
	`, b.EventID).Scan(&ev.ID, &ev.Name, &ev.TotalSeats, &ev.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock event: %w", err)
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM bookings WHERE event_id = $1 AND user_id = $2)
	`, b.EventID, b.UserID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check existing booking: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyBooked
	}

	var booked int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, b.EventID).Scan(&booked)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	if booked >= ev.TotalSeats {
		return nil, domain.ErrSoldOut
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings (event_id, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, b.EventID, b.UserID).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrAlreadyBooked
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return ev, nil
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID int64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, eventID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *bookingRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.BookingWithEvent, error) {
	query := `
		SELECT b.id, b.event_id, b.user_id, b.created_at, e.id, e.name, e.total_seats
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*domain.BookingWithEvent, 0)
	for rows.Next() {
		bw := &domain.BookingWithEvent{}
		if err := rows.Scan(
			&bw.ID, &bw.EventID, &bw.UserID, &bw.CreatedAt,
			&bw.Event.ID, &bw.Event.Name, &bw.Event.TotalSeats,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, bw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CountByUserSince(ctx context.Context, since time.Time) ([]domain.UserBookingCount, error) {
	query := `
		SELECT user_id, COUNT(*)
		FROM bookings
		WHERE created_at >= $1
		GROUP BY user_id
	`
	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]domain.UserBookingCount, 0)
	for rows.Next() {
		var c domain.UserBookingCount
		if err := rows.Scan(&c.UserID, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
