// Package tasks implements the scheduled jobs of the motivation bot: the
// morning and evening delivery scans and store maintenance.
package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/edgard/motivbot/internal/database"
)

// Generator produces the texts delivered by the scans. generator.Generator
// satisfies it.
type Generator interface {
	MorningWish(ctx context.Context) string
	EveningWish(ctx context.Context) string
	MotivationalQuote(ctx context.Context) string
	WeeklyReflection(ctx context.Context) string
}

// Sender delivers a text to a chat. telegram.Sender satisfies it.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger    *slog.Logger
	Store     database.Store
	Generator Generator
	Sender    Sender
	Clock     clockwork.Clock
	Location  *time.Location
	// SendPause separates consecutive messages to the same user.
	SendPause time.Duration
}

func (d TaskDeps) clock() clockwork.Clock {
	if d.Clock == nil {
		return clockwork.NewRealClock()
	}
	return d.Clock
}

func (d TaskDeps) now() time.Time {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	return d.clock().Now().In(loc)
}

// pause waits SendPause or until ctx is done.
func (d TaskDeps) pause(ctx context.Context) error {
	if d.SendPause <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-d.clock().After(d.SendPause):
		return nil
	}
}
