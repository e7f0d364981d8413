package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"seatbooking/internal/domain"
	"seatbooking/internal/monitoring"
)

type leaderboardService struct {
	bookingRepo    domain.BookingRepository
	cache          domain.LeaderboardCache
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewLeaderboardService creates a LeaderboardService. Cache failures are logged and treated as misses.
func NewLeaderboardService(
	bookingRepo domain.BookingRepository,
	cache domain.LeaderboardCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.LeaderboardService {
	return &leaderboardService{
		bookingRepo:    bookingRepo,
		cache:          cache,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, period domain.Period, limit int) (*domain.Leaderboard, error) {
	since, err := domain.WindowStart(period, s.now().UTC())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	cached, found, err := s.cache.Get(ctx, period, limit)
	if err != nil {
		s.logger.WarnContext(ctx, "leaderboard cache read failed", "period", period, "limit", limit, "err", err)
	}
	monitoring.ObserveLeaderboardCache(found)
	if found {
		return cached, nil
	}

	start := time.Now()
	counts, err := s.bookingRepo.CountByUserSince(ctx, since)
	monitoring.ObserveLeaderboard(period, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("count bookings since %s: %w", since.Format(time.RFC3339), err)
	}

	lb := &domain.Leaderboard{
		Period:  period,
		Since:   since,
		Entries: domain.RankLeaderboard(counts, limit),
	}
	if err := s.cache.Set(ctx, period, limit, lb); err != nil {
		s.logger.WarnContext(ctx, "leaderboard cache write failed", "period", period, "limit", limit, "err", err)
	}
	return lb, nil
}
