package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewHelpHandler returns a handler for the /help command.
func NewHelpHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(helpHandler{deps}.Handle)
}

// helpHandler processes the /help command using injected dependencies.
type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, m Messenger, update *models.Update) {
	log := h.deps.Logger.With("handler", "help")

	msg, ok := incomingMessage(ctx, log, update)
	if !ok {
		return
	}

	log.InfoContext(ctx, "Handling /help command", "chat_id", msg.Chat.ID, "user_id", msg.From.ID)
	reply(ctx, m, log, msg, withBotName(h.deps.Config.Messages.Help, botUsername(h.deps)))
}

func botUsername(deps HandlerDeps) string {
	if deps.Config.Telegram.BotInfo == nil {
		return ""
	}
	return deps.Config.Telegram.BotInfo.Username
}
