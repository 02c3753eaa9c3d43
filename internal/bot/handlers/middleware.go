// Package handlers contains Telegram bot command handlers, their
// registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover creates a middleware that stops a panicking handler from taking
// down the process. The panic is logged and the user gets the general error
// message.
func Recover(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			defer recoverAndReport(ctx, deps, bot, update)
			next(ctx, bot, update)
		}
	}
}

func recoverAndReport(ctx context.Context, deps HandlerDeps, m Messenger, update *models.Update) {
	r := recover()
	if r == nil {
		return
	}

	log := deps.Logger.With("middleware", "Recover")
	log.ErrorContext(ctx, "Handler panicked", "panic", r, "update_id", update.ID)

	if update.Message == nil {
		return
	}
	send(ctx, m, log, update.Message.Chat.ID, deps.Config.Messages.GeneralError)
}
