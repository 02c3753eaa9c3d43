package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewUnknownCommandHandler returns the catch-all handler for messages that
// match no registered command.
func NewUnknownCommandHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(unknownCommandHandler{deps}.Handle)
}

type unknownCommandHandler struct {
	deps HandlerDeps
}

func (h unknownCommandHandler) Handle(ctx context.Context, m Messenger, update *models.Update) {
	log := h.deps.Logger.With("handler", "unknown")

	// Edits, callbacks and other update kinds carry no command to answer.
	if update.Message == nil || update.Message.From == nil {
		log.DebugContext(ctx, "Ignoring non-message update", "update_id", update.ID)
		return
	}
	// Photos, stickers and service messages get no reply.
	if update.Message.Text == "" {
		log.DebugContext(ctx, "Ignoring message without text", "chat_id", update.Message.Chat.ID)
		return
	}
	if _, target, ok := leadingCommand(update.Message); ok && !h.deps.addressedToBot(target) {
		log.DebugContext(ctx, "Ignoring command for another bot", "chat_id", update.Message.Chat.ID, "target", target)
		return
	}

	log.InfoContext(ctx, "Unrecognized input", "chat_id", update.Message.Chat.ID, "user_id", update.Message.From.ID)
	reply(ctx, m, log, update.Message, h.deps.Config.Messages.UnknownCommand)
}
