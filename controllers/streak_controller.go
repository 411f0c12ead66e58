package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/miqra/miqra-server/services"
	"github.com/miqra/miqra-server/utils"
)

// StreakController exposes the daily reading streak.
type StreakController struct {
	svc *services.ReadingService
}

// NewStreakController creates a new controller instance.
func NewStreakController(svc *services.ReadingService) *StreakController {
	return &StreakController{svc: svc}
}

// GetStreak returns the user's current and longest streak. The stored value
// is verified against check-in history on every read and repaired when the
// two disagree.
func (s *StreakController) GetStreak(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := services.CacheKey(userID, "streak")
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	view, err := s.svc.GetStreak(userID)
	if err != nil {
		respondServiceError(ctx, err, 50020, "failed to get streak")
		return
	}

	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: view}
	// Short TTL: the displayed run must decay when a day passes without
	// reading, so this cannot be cached long.
	utils.CacheSetJSON(cacheKey, wrapper, 5*time.Minute)

	utils.Success(ctx, view)
}

// Recalculate forces a streak rebuild from check-in history.
func (s *StreakController) Recalculate(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	view, err := s.svc.RecalculateStreak(userID)
	if err != nil {
		respondServiceError(ctx, err, 50021, "failed to recalculate streak")
		return
	}
	utils.Success(ctx, view)
}
