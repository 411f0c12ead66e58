package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/miqra/miqra-server/services"
	"github.com/miqra/miqra-server/utils"
)

// Scheduler runs background maintenance jobs.
type Scheduler struct {
	scheduler *gocron.Scheduler
	svc       *services.ReadingService
}

// New creates a scheduler over the reading service.
func New(svc *services.ReadingService) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		svc:       svc,
	}
}

// Start registers and launches all jobs without blocking.
func (s *Scheduler) Start() {
	// Streak decay only shows when the state is recomputed against a new
	// "today". Reads self-heal on demand; this pass keeps stored rows
	// honest for users who have gone quiet. Hourly, because midnight
	// arrives at a different UTC hour for every timezone.
	if _, err := s.scheduler.Every(1).Hour().Do(s.reconcileStreaks); err != nil {
		utils.Sugar.Errorw("failed to register streak reconcile job", "error", err)
	}

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) reconcileStreaks() {
	start := time.Now()
	count, err := s.svc.ReconcileAllStreaks()
	if err != nil {
		utils.Sugar.Errorw("streak reconcile pass failed", "error", err)
		return
	}
	utils.Sugar.Infow("streak reconcile pass complete",
		"users", count,
		"elapsed", time.Since(start).String(),
	)
}
