package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/edgard/motivbot/internal/bot/tasks"
	"github.com/edgard/motivbot/internal/config"
)

// Scheduler manages scheduled tasks using the gocron library.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	cfg       *config.SchedulerConfig
	taskMap   map[string]tasks.ScheduledTaskFunc
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.Mutex
	running   bool
}

// NewScheduler creates a new scheduler instance using gocron. Jobs run in
// loc; extra options are passed to gocron.
func NewScheduler(logger *slog.Logger, cfg *config.SchedulerConfig, loc *time.Location, taskMap map[string]tasks.ScheduledTaskFunc, opts ...gocron.SchedulerOption) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "scheduler")

	if loc != nil {
		opts = append([]gocron.SchedulerOption{gocron.WithLocation(loc)}, opts...)
	}
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		log.Error("Failed to create gocron scheduler", "error", err)
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: s,
		logger:    log,
		cfg:       cfg,
		taskMap:   taskMap,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// jobDefinition picks a cron schedule when one is configured and an
// interval otherwise.
func jobDefinition(taskConfig config.TaskConfig) (gocron.JobDefinition, string, error) {
	if taskConfig.Schedule != "" {
		return gocron.CronJob(taskConfig.Schedule, true), taskConfig.Schedule, nil
	}
	if taskConfig.Interval > 0 {
		return gocron.DurationJob(taskConfig.Interval), "every " + taskConfig.Interval.String(), nil
	}
	return nil, "", fmt.Errorf("neither schedule nor interval set")
}

// Start schedules and starts all enabled tasks based on the configuration.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	s.logger.Debug("Configuring scheduler jobs...")

	if s.cfg == nil || len(s.cfg.Tasks) == 0 {
		s.logger.Warn("No scheduler tasks configured.")
		s.scheduler.Start()
		s.running = true
		return nil
	}

	scheduledCount := 0
	for taskName, taskConfig := range s.cfg.Tasks {
		if !taskConfig.Enabled {
			s.logger.Info("Skipping disabled task", "task_name", taskName)
			continue
		}

		taskFunc, exists := s.taskMap[taskName]
		if !exists {
			s.logger.Warn("Scheduled task configured but not found in registry, skipping", "task_name", taskName)
			continue
		}

		definition, when, err := jobDefinition(taskConfig)
		if err != nil {
			s.logger.Warn("Scheduled task enabled but has no schedule, skipping", "task_name", taskName, "error", err)
			continue
		}

		jobOpts := []gocron.JobOption{
			gocron.WithName(taskName),
			// A scan still sending when the next tick arrives is not run twice.
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		}
		if taskConfig.Schedule == "" {
			jobOpts = append(jobOpts, gocron.WithStartAt(gocron.WithStartImmediately()))
		}

		_, err = s.scheduler.NewJob(definition, gocron.NewTask(s.runTask, taskName, taskFunc), jobOpts...)
		if err != nil {
			s.logger.Error("Failed to schedule task", "task_name", taskName, "schedule", when, "error", err)
			continue
		}

		s.logger.Info("Scheduled task", "task_name", taskName, "schedule", when)
		scheduledCount++
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler initialized and started", "tasks_scheduled", scheduledCount)

	return nil
}

func (s *Scheduler) runTask(name string, taskFunc tasks.ScheduledTaskFunc) {
	s.logger.Debug("Running scheduled task", "task_name", name)
	startTime := time.Now()
	if err := taskFunc(s.ctx); err != nil {
		s.logger.Error("Scheduled task failed", "task_name", name, "error", err)
	}
	s.logger.Debug("Finished scheduled task", "task_name", name, "duration", time.Since(startTime))
}

// Stop cancels running tasks and waits for them to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.logger.Info("Scheduler is not running, nothing to stop.")
		return nil
	}

	s.logger.Debug("Stopping scheduler gracefully (waiting for jobs)...")
	s.cancel()
	err := s.scheduler.Shutdown()
	if err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
	} else {
		s.logger.Info("Scheduler stopped gracefully.")
	}

	s.running = false
	return err
}
