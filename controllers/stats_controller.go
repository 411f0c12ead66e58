package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miqra/miqra-server/services"
	"github.com/miqra/miqra-server/utils"
)

// StatsController provides aggregate reading statistics over date ranges.
type StatsController struct {
	svc *services.ReadingService
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(svc *services.ReadingService) *StatsController {
	return &StatsController{svc: svc}
}

// GetRangeStats aggregates check-ins and hasanat over a date range,
// defaulting to the last 30 days.
func (s *StatsController) GetRangeStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	today, err := s.svc.UserToday(userID)
	if err != nil {
		respondServiceError(ctx, err, 50032, "failed to resolve date")
		return
	}
	from, to, err := parseDateRange(ctx, today)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40025, "invalid date range")
		return
	}

	stats, err := s.svc.GetRangeStats(userID, from, to)
	if err != nil {
		respondServiceError(ctx, err, 50033, "failed to get stats")
		return
	}
	utils.Success(ctx, stats)
}
