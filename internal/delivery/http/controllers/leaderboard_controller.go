package controllers

import (
	"log/slog"
	"net/http"

	"seatbooking/internal/delivery/http/helpers"
	"seatbooking/internal/domain"
)

type LeaderboardController struct {
	Logger  *slog.Logger
	Service domain.LeaderboardService
}

func NewLeaderboardController(logger *slog.Logger, svc domain.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{
		Logger:  logger,
		Service: svc,
	}
}

// GetLeaderboard godoc
// @Summary Most active users
// @Description Ranks users by bookings made within the trailing period. Ties share a rank and the next rank skips (1, 1, 3).
// @Tags leaderboard
// @Produce json
// @Param period query string false "day, week or month" default(month)
// @Param limit query int false "Maximum number of entries; missing or non-integer values use 10" default(10)
// @Success 200 {object} domain.Leaderboard
// @Failure 400 {object} helpers.ErrorResponse "Unknown period"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	period, err := helpers.ParsePeriod(r)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	limit := helpers.ParseLimit(r, domain.DefaultLeaderboardLimit)

	lb, err := c.Service.GetLeaderboard(r.Context(), period, limit)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, lb)
}
