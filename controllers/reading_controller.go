package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/miqra/miqra-server/engine"
	"github.com/miqra/miqra-server/models"
	"github.com/miqra/miqra-server/services"
	"github.com/miqra/miqra-server/utils"
)

// ReadingController exposes reading sessions, the reading cursor, coverage
// and milestone endpoints.
type ReadingController struct {
	svc *services.ReadingService
}

// NewReadingController creates a new controller instance.
func NewReadingController(svc *services.ReadingService) *ReadingController {
	return &ReadingController{svc: svc}
}

type sessionRequest struct {
	SurahNumber int    `json:"surah_number" binding:"required"`
	AyatStart   int    `json:"ayat_start" binding:"required"`
	AyatEnd     int    `json:"ayat_end" binding:"required"`
	Date        string `json:"date"`
	Notes       string `json:"notes"`
	ClientToken string `json:"client_token"`
}

func sessionResponse(s *models.ReadingSession) gin.H {
	return gin.H{
		"id":           s.ID,
		"surah_number": s.SurahNumber,
		"ayat_start":   s.AyatStart,
		"ayat_end":     s.AyatEnd,
		"ayat_count":   s.AyatCount,
		"date":         engine.DateOf(s.Date).String(),
		"session_time": s.SessionTime.Format(time.RFC3339),
		"notes":        s.Notes,
		"client_token": s.ClientToken,
	}
}

// LogSession records a reading session and runs the derived-state pipeline.
func (r *ReadingController) LogSession(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req sessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	session, err := r.svc.LogSession(userID, services.SessionInput{
		SurahNumber: req.SurahNumber,
		AyatStart:   req.AyatStart,
		AyatEnd:     req.AyatEnd,
		Date:        req.Date,
		Notes:       req.Notes,
		ClientToken: req.ClientToken,
	})
	if err != nil {
		respondServiceError(ctx, err, 50010, "failed to log session")
		return
	}

	utils.Respond(ctx, http.StatusCreated, 0, "success", sessionResponse(session))
}

// ListSessions returns the user's sessions newest first with pagination.
func (r *ReadingController) ListSessions(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	sessions, total, err := r.svc.ListSessions(userID, limit, offset)
	if err != nil {
		respondServiceError(ctx, err, 50011, "failed to list sessions")
		return
	}

	items := make([]gin.H, 0, len(sessions))
	for i := range sessions {
		items = append(items, sessionResponse(&sessions[i]))
	}
	utils.Success(ctx, gin.H{
		"items": items,
		"total": total,
	})
}

// GetSession returns one session owned by the user.
func (r *ReadingController) GetSession(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid session id")
		return
	}

	session, err := r.svc.GetSession(userID, sessionID)
	if err != nil {
		respondServiceError(ctx, err, 50012, "failed to get session")
		return
	}
	utils.Success(ctx, sessionResponse(session))
}

// UpdateSession edits a session and replays all derived state.
func (r *ReadingController) UpdateSession(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid session id")
		return
	}

	var req struct {
		SurahNumber *int    `json:"surah_number"`
		AyatStart   *int    `json:"ayat_start"`
		AyatEnd     *int    `json:"ayat_end"`
		Date        *string `json:"date"`
		Notes       *string `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40012, "invalid request payload")
		return
	}

	session, err := r.svc.UpdateSession(userID, sessionID, services.SessionUpdate{
		SurahNumber: req.SurahNumber,
		AyatStart:   req.AyatStart,
		AyatEnd:     req.AyatEnd,
		Date:        req.Date,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(ctx, err, 50013, "failed to update session")
		return
	}
	utils.Success(ctx, sessionResponse(session))
}

// DeleteSession removes a session and replays all derived state.
func (r *ReadingController) DeleteSession(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid session id")
		return
	}

	if err := r.svc.DeleteSession(userID, sessionID); err != nil {
		respondServiceError(ctx, err, 50014, "failed to delete session")
		return
	}
	utils.Success(ctx, gin.H{"message": "session deleted"})
}

// GetProgress returns the reading cursor with lap figures.
func (r *ReadingController) GetProgress(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	view, err := r.svc.GetProgress(userID)
	if err != nil {
		respondServiceError(ctx, err, 50015, "failed to get progress")
		return
	}
	utils.Success(ctx, view)
}

// GetNextUnread returns the first never-read ayah at or after the cursor.
func (r *ReadingController) GetNextUnread(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	view, err := r.svc.GetNextUnread(userID)
	if err != nil {
		respondServiceError(ctx, err, 50016, "failed to get next unread")
		return
	}
	utils.Success(ctx, view)
}

// GetCoverage returns corpus-wide unique coverage.
func (r *ReadingController) GetCoverage(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := services.CacheKey(userID, "coverage")
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	summary, err := r.svc.GetCoverage(userID)
	if err != nil {
		respondServiceError(ctx, err, 50017, "failed to get coverage")
		return
	}

	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: summary}
	utils.CacheSetJSON(cacheKey, wrapper, 10*time.Minute)

	utils.Success(ctx, summary)
}

// GetSurahCoverage returns per-surah coverage with missing ayat ranges.
func (r *ReadingController) GetSurahCoverage(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	surah, err := strconv.Atoi(ctx.Param("surah"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40013, "invalid surah number")
		return
	}

	cov, err := r.svc.GetSurahCoverage(userID, surah)
	if err != nil {
		respondServiceError(ctx, err, 50018, "failed to get surah coverage")
		return
	}
	utils.Success(ctx, cov)
}

// GetMilestones returns reached milestones and the next one ahead.
func (r *ReadingController) GetMilestones(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	view, err := r.svc.GetMilestones(userID)
	if err != nil {
		respondServiceError(ctx, err, 50019, "failed to get milestones")
		return
	}
	utils.Success(ctx, view)
}

// GetCompletionEstimate projects a khatam date from the recent pace.
func (r *ReadingController) GetCompletionEstimate(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	est, err := r.svc.GetCompletionEstimate(userID)
	if err != nil {
		respondServiceError(ctx, err, 50022, "failed to estimate completion")
		return
	}
	utils.Success(ctx, est)
}
