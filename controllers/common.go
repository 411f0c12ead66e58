package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/miqra/miqra-server/engine"
	"github.com/miqra/miqra-server/services"
	"github.com/miqra/miqra-server/utils"
)

// getUserID extracts the authenticated user id set by the auth middleware.
func getUserID(ctx *gin.Context) (uint, bool) {
	v, exists := ctx.Get("user_id")
	if !exists {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case float64:
		return uint(id), true
	default:
		return 0, false
	}
}

// respondServiceError maps orchestrator errors onto the standard envelope.
func respondServiceError(ctx *gin.Context, err error, code int, fallback string) {
	if services.IsValidation(err) {
		utils.Error(ctx, http.StatusBadRequest, 40000+code%1000, err.Error())
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40400+code%100, "record not found")
		return
	}
	utils.Sugar.Errorw(fallback, "error", err)
	utils.Error(ctx, http.StatusInternalServerError, code, fallback)
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseDateRange reads from/to query parameters, defaulting to the last 30
// days ending today.
func parseDateRange(ctx *gin.Context, today engine.Date) (engine.Date, engine.Date, error) {
	from := today.AddDays(-29)
	to := today
	var err error
	if raw := ctx.Query("from"); raw != "" {
		from, err = engine.ParseDate(raw)
		if err != nil {
			return engine.Date{}, engine.Date{}, err
		}
	}
	if raw := ctx.Query("to"); raw != "" {
		to, err = engine.ParseDate(raw)
		if err != nil {
			return engine.Date{}, engine.Date{}, err
		}
	}
	return from, to, nil
}
