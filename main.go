package main

import (
	"github.com/miqra/miqra-server/config"
	"github.com/miqra/miqra-server/models"
	"github.com/miqra/miqra-server/routes"
	"github.com/miqra/miqra-server/scheduler"
	"github.com/miqra/miqra-server/services"
	"github.com/miqra/miqra-server/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.ReadingSession{},
		&models.CheckIn{},
		&models.Streak{},
		&models.ReadingProgress{},
		&models.DailyHasanat{},
		&models.LetterCount{},
	)

	letters, err := services.LoadLetterTable(db, cfg.LetterCountsPath)
	if err != nil {
		utils.Sugar.Fatalf("letter counts unavailable: %v", err)
	}
	utils.Sugar.Infof("letter counts loaded: %d ayat, %d letters total", letters.Size(), letters.TotalLetters())

	svc := services.NewReadingService(db, letters)

	sched := scheduler.New(svc)
	sched.Start()
	defer sched.Stop()

	r := routes.SetupRouter(db, svc)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
