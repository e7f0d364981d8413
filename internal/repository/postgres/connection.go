package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// PoolConfig holds connection pool settings applied after the database is reachable.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connect opens a PostgreSQL handle and pings it, retrying up to attempts times
// so the service can start before the database container is ready.
func Connect(ctx context.Context, databaseURL string, attempts int, pool PoolConfig, logger *slog.Logger) (*sql.DB, error) {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		var db *sql.DB
		db, err = sql.Open("postgres", databaseURL)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = db.PingContext(pingCtx)
			cancel()
			if err == nil {
				db.SetMaxOpenConns(pool.MaxOpenConns)
				db.SetMaxIdleConns(pool.MaxIdleConns)
				db.SetConnMaxLifetime(pool.ConnMaxLifetime)
				logger.Info("connected to postgres", "attempt", i)
				return db, nil
			}
			_ = db.Close()
		}

		logger.Warn("database not ready", "attempt", i, "max_attempts", attempts, "err", err)
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return nil, fmt.Errorf("connect to postgres after %d attempts: %w", attempts, err)
}
