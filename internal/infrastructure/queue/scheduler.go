package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bestiary-backend/internal/domains/favourite/job"
	"bestiary-backend/pkg/logger"
)

// Scheduler registers cron-style maintenance jobs with asynq.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterMaintenanceJobs registers all recurring jobs.
func (s *Scheduler) RegisterMaintenanceJobs() error {
	return s.registerSweepDanglingFavouritesJob()
}

// Nightly at 3 AM UTC: prune favourites whose creature was deleted.
func (s *Scheduler) registerSweepDanglingFavouritesJob() error {
	payload, err := json.Marshal(job.SweepDanglingPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(job.TypeSweepDanglingFavourites, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *",
		task,
		asynq.Queue("low"),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("failed to register SweepDanglingFavourites job", err)
		return err
	}

	logger.Info("registered SweepDanglingFavourites: daily at 3 AM", nil)
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
