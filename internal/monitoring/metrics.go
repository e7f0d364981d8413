package monitoring

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"seatbooking/internal/domain"
)

// Reservation outcomes used as the "outcome" label.
const (
	OutcomeReserved      = "reserved"
	OutcomeInvalid       = "invalid"
	OutcomeNotFound      = "not_found"
	OutcomeAlreadyBooked = "already_booked"
	OutcomeSoldOut       = "sold_out"
	OutcomeError         = "error"
)

var (
	reservations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatbooking_reservations_total",
			Help: "Reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	leaderboardDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seatbooking_leaderboard_duration_seconds",
			Help:    "Time spent computing a leaderboard from the store",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"period"},
	)

	leaderboardCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatbooking_leaderboard_cache_total",
			Help: "Leaderboard cache lookups by result",
		},
		[]string{"result"},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatbooking_http_requests_total",
			Help: "HTTP requests by method, route pattern and status",
		},
		[]string{"method", "route", "status"},
	)
)

// ReservationOutcome classifies the error returned by a reservation attempt.
func ReservationOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeReserved
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrAlreadyBooked):
		return OutcomeAlreadyBooked
	case errors.Is(err, domain.ErrSoldOut):
		return OutcomeSoldOut
	default:
		return OutcomeError
	}
}

// ObserveReservation counts one reservation attempt.
func ObserveReservation(err error) {
	reservations.WithLabelValues(ReservationOutcome(err)).Inc()
}

// ObserveLeaderboard records how long a leaderboard computation for period took.
func ObserveLeaderboard(period domain.Period, d time.Duration) {
	leaderboardDuration.WithLabelValues(string(period)).Observe(d.Seconds())
}

// ObserveLeaderboardCache counts a cache hit or miss.
func ObserveLeaderboardCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	leaderboardCache.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest counts one served request. route should be the mux pattern, not the raw path.
func ObserveHTTPRequest(method, route string, status int) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
