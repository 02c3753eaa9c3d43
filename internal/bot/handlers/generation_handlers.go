package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewMotivateHandler returns a handler for the /motivate command.
func NewMotivateHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(motivateHandler{deps}.Handle)
}

// motivateHandler sends a motivational quote on demand, subscribed or not.
type motivateHandler struct {
	deps HandlerDeps
}

func (h motivateHandler) Handle(ctx context.Context, m Messenger, update *models.Update) {
	log := h.deps.Logger.With("handler", "motivate")

	msg, ok := incomingMessage(ctx, log, update)
	if !ok {
		return
	}

	log.InfoContext(ctx, "Handling /motivate command", "chat_id", msg.Chat.ID, "user_id", msg.From.ID)
	send(ctx, m, log, msg.Chat.ID, h.deps.Config.Messages.GeneratingQuote)
	send(ctx, m, log, msg.Chat.ID, h.deps.Generator.MotivationalQuote(ctx))
}

// NewWishHandler returns a handler for the /wish command.
func NewWishHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(wishHandler{deps}.Handle)
}

// wishHandler sends a morning or evening wish depending on the current hour.
type wishHandler struct {
	deps HandlerDeps
}

func (h wishHandler) Handle(ctx context.Context, m Messenger, update *models.Update) {
	log := h.deps.Logger.With("handler", "wish")

	msg, ok := incomingMessage(ctx, log, update)
	if !ok {
		return
	}

	hour := h.deps.now().Hour()
	log.InfoContext(ctx, "Handling /wish command", "chat_id", msg.Chat.ID, "user_id", msg.From.ID, "hour", hour)
	send(ctx, m, log, msg.Chat.ID, h.deps.Config.Messages.GeneratingWish)
	send(ctx, m, log, msg.Chat.ID, h.deps.Generator.Wish(ctx, hour))
}

// NewCustomHandler returns a handler for the /custom command.
func NewCustomHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(customHandler{deps}.Handle)
}

// customHandler sends a motivational phrase on the topic given after the command.
type customHandler struct {
	deps HandlerDeps
}

func (h customHandler) Handle(ctx context.Context, m Messenger, update *models.Update) {
	log := h.deps.Logger.With("handler", "custom")

	msg, ok := incomingMessage(ctx, log, update)
	if !ok {
		return
	}
	messages := h.deps.Config.Messages

	topic := commandArgs(msg.Text)
	if topic == "" {
		reply(ctx, m, log, msg, messages.CustomUsage)
		return
	}

	log.InfoContext(ctx, "Handling /custom command", "chat_id", msg.Chat.ID, "user_id", msg.From.ID, "topic", topic)
	send(ctx, m, log, msg.Chat.ID, fmt.Sprintf(messages.GeneratingCustom, topic))
	send(ctx, m, log, msg.Chat.ID, h.deps.Generator.CustomMotivation(ctx, topic))
}
