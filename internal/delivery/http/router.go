package http

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"seatbooking/internal/delivery/http/controllers"
	"seatbooking/internal/delivery/http/helpers"
	"seatbooking/internal/delivery/http/middleware"
	"seatbooking/internal/monitoring"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events      *controllers.EventController
	Bookings    *controllers.BookingController
	Leaderboard *controllers.LeaderboardController
	Health      *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes and wraps it
// with chi's request id, real ip and panic recovery middleware plus access logging and CORS.
func NewRouter(logger *slog.Logger, c Controllers, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("GET /events/{id}", c.Events.GetEvent)
	mux.HandleFunc("POST /reserve", c.Bookings.Reserve)
	mux.HandleFunc("GET /user/{id}/bookings", c.Bookings.ListUserBookings)
	mux.HandleFunc("GET /leaderboard", c.Leaderboard.GetLeaderboard)

	// Operations
	mux.HandleFunc("GET /health", c.Health.Health)
	mux.Handle("GET /metrics", monitoring.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONError(w, http.StatusNotFound, "not found", "")
	})

	var h http.Handler = mux
	h = middleware.CORS(allowedOrigins, h)
	h = chimw.Recoverer(h)
	h = middleware.LoggingMiddleware(logger, h)
	h = chimw.RealIP(h)
	h = chimw.RequestID(h)
	return h
}
