package handlers

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jonboulle/clockwork"

	"github.com/edgard/motivbot/internal/config"
	"github.com/edgard/motivbot/internal/database"
)

// Messenger sends Telegram messages. *bot.Bot satisfies it.
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TextGenerator is the part of generator.Generator used by command handlers.
type TextGenerator interface {
	MotivationalQuote(ctx context.Context) string
	Wish(ctx context.Context, hour int) string
	CustomMotivation(ctx context.Context, topic string) string
}

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Store     database.Store
	Generator TextGenerator
	Clock     clockwork.Clock
	Location  *time.Location
}

func (d HandlerDeps) now() time.Time {
	clock := d.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	return clock.Now().In(loc)
}

// addressedToBot reports whether a command target names this bot. An empty
// target, or an unknown bot username, counts as addressed to it.
func (d HandlerDeps) addressedToBot(target string) bool {
	if target == "" || d.Config == nil || d.Config.Telegram.BotInfo == nil {
		return true
	}
	return strings.EqualFold(target, d.Config.Telegram.BotInfo.Username)
}

// handleFunc is a handler body that talks to Telegram through a Messenger.
type handleFunc func(ctx context.Context, m Messenger, update *models.Update)

// adapt exposes a handleFunc as a go-telegram/bot handler.
func adapt(h handleFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		h(ctx, b, update)
	}
}
