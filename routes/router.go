package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/miqra/miqra-server/config"
	"github.com/miqra/miqra-server/controllers"
	"github.com/miqra/miqra-server/middleware"
	"github.com/miqra/miqra-server/services"
	"github.com/miqra/miqra-server/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, svc *services.ReadingService) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	readingController := controllers.NewReadingController(svc)
	streakController := controllers.NewStreakController(svc)
	checkinController := controllers.NewCheckInController(svc)
	hasanatController := controllers.NewHasanatController(svc)
	statsController := controllers.NewStatsController(svc)
	quranController := controllers.NewQuranController()

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// Public corpus metadata and hasanat preview
	api.GET("/quran/surahs", quranController.ListSurahs)
	api.GET("/quran/surahs/:number", quranController.GetSurah)
	api.POST("/hasanat/preview", hasanatController.Preview)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.POST("/sessions", readingController.LogSession)
	protected.GET("/sessions", readingController.ListSessions)
	protected.GET("/sessions/:id", readingController.GetSession)
	protected.PUT("/sessions/:id", readingController.UpdateSession)
	protected.DELETE("/sessions/:id", readingController.DeleteSession)

	protected.GET("/progress", readingController.GetProgress)
	protected.GET("/progress/next-unread", readingController.GetNextUnread)
	protected.GET("/progress/milestones", readingController.GetMilestones)
	protected.GET("/progress/estimate", readingController.GetCompletionEstimate)

	protected.GET("/coverage", readingController.GetCoverage)
	protected.GET("/coverage/surah/:surah", readingController.GetSurahCoverage)

	protected.GET("/streak", streakController.GetStreak)
	protected.POST("/streak/recalculate", streakController.Recalculate)

	protected.GET("/checkins", checkinController.ListCheckIns)
	protected.GET("/checkins/today", checkinController.GetToday)

	protected.GET("/hasanat/daily", hasanatController.GetDaily)
	protected.GET("/stats", statsController.GetRangeStats)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
