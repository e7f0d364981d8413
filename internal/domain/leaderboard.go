package domain

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Period is the trailing window a leaderboard is computed over.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// DefaultLeaderboardLimit is used when the caller does not supply a usable limit.
const DefaultLeaderboardLimit = 10

// ParsePeriod validates s as a Period.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return p, nil
	}
	return "", fmt.Errorf("%w: period must be one of day, week, month", ErrInvalidInput)
}

// WindowStart returns the inclusive lower bound of the window ending at now.
// Month subtraction is calendar based, so March 31 minus one month normalises to March 3 (or 2 in leap years).
func WindowStart(p Period, now time.Time) (time.Time, error) {
	switch p {
	case PeriodDay:
		return now.AddDate(0, 0, -1), nil
	case PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonth:
		return now.AddDate(0, -1, 0), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown period %q", ErrInvalidInput, p)
}

// UserBookingCount is the number of bookings a user made within a window.
type UserBookingCount struct {
	UserID string
	Count  int
}

// LeaderboardEntry is one ranked row of the leaderboard.
// swagger:model LeaderboardEntry
type LeaderboardEntry struct {
	UserID       string `json:"user_id"`
	Rank         int    `json:"rank"`
	BookingCount int    `json:"booking_count"`
}

// Leaderboard is a ranked list of the most active users since Since.
type Leaderboard struct {
	Period  Period             `json:"period"`
	Since   time.Time          `json:"since"`
	Entries []LeaderboardEntry `json:"leaderboard"`
}

// RankLeaderboard orders counts by booking count descending, breaking ties by ascending
// user id, keeps the first limit rows and assigns competition ranks (1,1,3,...).
// A limit of zero or less yields an empty result. counts is not modified.
func RankLeaderboard(counts []UserBookingCount, limit int) []LeaderboardEntry {
	if limit <= 0 || len(counts) == 0 {
		return []LeaderboardEntry{}
	}

	sorted := make([]UserBookingCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].UserID < sorted[j].UserID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]LeaderboardEntry, 0, len(sorted))
	rank := 1
	for i, c := range sorted {
		if i > 0 && c.Count < sorted[i-1].Count {
			rank = i + 1
		}
		entries = append(entries, LeaderboardEntry{
			UserID:       c.UserID,
			Rank:         rank,
			BookingCount: c.Count,
		})
	}
	return entries
}

// LeaderboardCache stores computed leaderboards for a short time.
// Get reports found=false on a miss.
type LeaderboardCache interface {
	Get(ctx context.Context, period Period, limit int) (lb *Leaderboard, found bool, err error)
	Set(ctx context.Context, period Period, limit int, lb *Leaderboard) error
}

// LeaderboardService computes the most-active-users ranking.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, period Period, limit int) (*Leaderboard, error)
}
