package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miqra/miqra-server/engine"
	"github.com/miqra/miqra-server/quran"
	"github.com/miqra/miqra-server/services"
	"github.com/miqra/miqra-server/utils"
)

// HasanatController exposes hasanat (reward) calculations, each letter read
// counting tenfold.
type HasanatController struct {
	svc *services.ReadingService
}

// NewHasanatController creates a new controller instance.
func NewHasanatController(svc *services.ReadingService) *HasanatController {
	return &HasanatController{svc: svc}
}

// Preview computes letters and hasanat for an arbitrary ayat range without
// logging anything. Public: no account needed to see what a reading is
// worth.
func (h *HasanatController) Preview(ctx *gin.Context) {
	var req struct {
		SurahNumber int `json:"surah_number" binding:"required"`
		AyatStart   int `json:"ayat_start" binding:"required"`
		AyatEnd     int `json:"ayat_end" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if !quran.ValidSurah(req.SurahNumber) {
		utils.Error(ctx, http.StatusBadRequest, 40021, "surah number out of range")
		return
	}
	if req.AyatStart < 1 || req.AyatEnd < req.AyatStart || req.AyatEnd > quran.AyatCount(req.SurahNumber) {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid ayat range")
		return
	}

	total := engine.ComputeHasanatForRange(h.svc.LetterCounts(), req.SurahNumber, req.AyatStart, req.AyatEnd)
	utils.Success(ctx, gin.H{
		"surah_number": req.SurahNumber,
		"ayat_start":   req.AyatStart,
		"ayat_end":     req.AyatEnd,
		"letters":      total.Letters,
		"hasanat":      total.Hasanat,
	})
}

// GetDaily lists per-day hasanat totals for a date range, newest first.
func (h *HasanatController) GetDaily(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	today, err := h.svc.UserToday(userID)
	if err != nil {
		respondServiceError(ctx, err, 50025, "failed to resolve date")
		return
	}
	from, to, err := parseDateRange(ctx, today)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid date range")
		return
	}

	views, err := h.svc.GetDailyHasanat(userID, from, to)
	if err != nil {
		respondServiceError(ctx, err, 50026, "failed to get daily hasanat")
		return
	}
	utils.Success(ctx, gin.H{
		"from":  from.String(),
		"to":    to.String(),
		"items": views,
	})
}
