package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miqra/miqra-server/services"
	"github.com/miqra/miqra-server/utils"
)

// CheckInController exposes the check-in calendar. Check-ins are derived
// from sessions; there is no direct check-in write endpoint.
type CheckInController struct {
	svc *services.ReadingService
}

// NewCheckInController creates a new controller instance.
func NewCheckInController(svc *services.ReadingService) *CheckInController {
	return &CheckInController{svc: svc}
}

// ListCheckIns lists check-in days inside a date range, newest first.
func (c *CheckInController) ListCheckIns(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	today, err := c.svc.UserToday(userID)
	if err != nil {
		respondServiceError(ctx, err, 50027, "failed to resolve date")
		return
	}
	from, to, err := parseDateRange(ctx, today)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid date range")
		return
	}

	views, err := c.svc.GetCheckIns(userID, from, to)
	if err != nil {
		respondServiceError(ctx, err, 50028, "failed to list check-ins")
		return
	}
	utils.Success(ctx, gin.H{
		"from":  from.String(),
		"to":    to.String(),
		"items": views,
	})
}

// GetToday reports whether the user has read today in their timezone.
func (c *CheckInController) GetToday(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	done, today, err := c.svc.HasCheckedInToday(userID)
	if err != nil {
		respondServiceError(ctx, err, 50029, "failed to check today")
		return
	}
	utils.Success(ctx, gin.H{
		"date":       today.String(),
		"checked_in": done,
	})
}
