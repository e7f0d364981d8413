package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order on start-up. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		total_seats INTEGER NOT NULL CHECK (total_seats > 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	// clock_timestamp() is taken at insert time, while the event row lock is held,
	// so bookings of one event are stamped in the order they commit.
	`CREATE TABLE IF NOT EXISTS bookings (
		id         BIGSERIAL PRIMARY KEY,
		event_id   BIGINT NOT NULL REFERENCES events(id),
		user_id    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
		CONSTRAINT bookings_event_user_key UNIQUE (event_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_user_created_idx ON bookings (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS bookings_created_idx ON bookings (created_at)`,
}

// RunMigrations creates the events and bookings tables if they do not exist.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
