package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// weeklyAt is when the weekly report goes out, in the configured timezone.
const weeklyAt = "09:00"

// Scheduler drives the weekly report job plus an hourly keep-alive that
// exists only to keep the hosting process warm.
type Scheduler struct {
	scheduler *gocron.Scheduler
	logger    zerolog.Logger
}

// New creates a Scheduler anchored to the given timezone.
func New(logger zerolog.Logger, timezone *time.Location) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(timezone),
		logger:    logger,
	}
}

// Start registers the Monday-morning report job and the hourly keep-alive,
// then starts the underlying scheduler. job failures are contained per run.
func (s *Scheduler) Start(job func()) error {
	_, err := s.scheduler.Every(1).Week().Monday().At(weeklyAt).Do(func() {
		s.logger.Info().Msg("scheduler: running weekly report job")
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error().Interface("panic", r).Msg("scheduler: weekly job panicked")
			}
		}()
		job()
		s.logger.Info().Msg("scheduler: weekly report job completed")
	})
	if err != nil {
		return err
	}

	_, err = s.scheduler.Every(1).Hour().Do(func() {
		s.logger.Info().Msg("scheduler: keep-alive tick")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
