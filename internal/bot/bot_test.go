package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/edgard/motivbot/internal/bot/tasks"
	"github.com/edgard/motivbot/internal/config"
	"github.com/edgard/motivbot/internal/database"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJobDefinition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      config.TaskConfig
		wantWhen string
		wantErr  bool
	}{
		{name: "interval", cfg: config.TaskConfig{Interval: 30 * time.Second}, wantWhen: "every 30s"},
		{name: "cron wins", cfg: config.TaskConfig{Schedule: "0 0 3 * * *", Interval: time.Minute}, wantWhen: "0 0 3 * * *"},
		{name: "nothing", cfg: config.TaskConfig{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			def, when, err := jobDefinition(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil || def == nil {
				t.Fatalf("jobDefinition = %v, %v", def, err)
			}
			if when != tt.wantWhen {
				t.Errorf("when = %q, want %q", when, tt.wantWhen)
			}
		})
	}
}

func TestSchedulerRunsEnabledTasks(t *testing.T) {
	t.Parallel()

	ran := make(chan string, 16)
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"enabled": func(ctx context.Context) error {
			select {
			case ran <- "enabled":
			default:
			}
			return nil
		},
		"disabled": func(ctx context.Context) error {
			ran <- "disabled"
			return nil
		},
	}
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"enabled":    {Enabled: true, Interval: time.Hour},
		"disabled":   {Enabled: false, Interval: time.Hour},
		"unknown":    {Enabled: true, Interval: time.Hour},
		"unschedule": {Enabled: true},
	}}

	s, err := NewScheduler(discardLogger(), cfg, time.UTC, taskMap)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(); err == nil {
		t.Error("second Start succeeded")
	}

	if got := len(s.scheduler.Jobs()); got != 1 {
		t.Errorf("scheduled %d jobs, want 1", got)
	}

	select {
	case name := <-ran:
		if name != "enabled" {
			t.Errorf("ran %q", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("enabled task did not start immediately")
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestSchedulerStopCancelsRunningTask(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	stopped := make(chan error, 1)
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"slow": func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			stopped <- ctx.Err()
			return ctx.Err()
		},
	}
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"slow": {Enabled: true, Interval: time.Hour},
	}}

	s, err := NewScheduler(discardLogger(), cfg, nil, taskMap)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("task did not start")
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	select {
	case err := <-stopped:
		if err == nil {
			t.Error("task context not cancelled")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("task did not observe cancellation")
	}
}

type blockingListener struct {
	started chan struct{}
}

func (l *blockingListener) Start(ctx context.Context) {
	close(l.started)
	<-ctx.Done()
}

type returningListener struct{}

func (returningListener) Start(context.Context) {}

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := NewScheduler(discardLogger(), &config.SchedulerConfig{}, time.UTC, nil)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	return s
}

func TestBotRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	listener := &blockingListener{started: make(chan struct{})}
	b := NewBot(discardLogger(), database.NewMemoryStore(nil), listener, newTestScheduler(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	select {
	case <-listener.started:
	case <-time.After(5 * time.Second):
		t.Fatal("listener not started")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestBotRunReportsListenerExit(t *testing.T) {
	t.Parallel()

	b := NewBot(discardLogger(), database.NewMemoryStore(nil), returningListener{}, newTestScheduler(t))

	if err := b.Run(context.Background()); err == nil {
		t.Fatal("expected error when listener stops on its own")
	}
}

func TestBotRunChecksStore(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewBot(discardLogger(), database.NewMemoryStore(nil), returningListener{}, newTestScheduler(t))

	if err := b.Run(ctx); err == nil {
		t.Fatal("expected error from unavailable store")
	}
}
