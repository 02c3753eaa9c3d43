package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/motivbot/internal/database"
)

// NewSubscribeHandler returns a handler for the /subscribe command.
func NewSubscribeHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(subscribeHandler{deps}.Handle)
}

// subscribeHandler creates a default preference for new subscribers.
type subscribeHandler struct {
	deps HandlerDeps
}

func (h subscribeHandler) Handle(ctx context.Context, m Messenger, update *models.Update) {
	log := h.deps.Logger.With("handler", "subscribe")

	msg, ok := incomingMessage(ctx, log, update)
	if !ok {
		return
	}
	userID := msg.From.ID
	messages := h.deps.Config.Messages

	created, err := h.deps.Store.CreatePreference(ctx, database.NewUserPreference(userID))
	if err != nil {
		log.ErrorContext(ctx, "Failed to create preference", "error", err, "user_id", userID)
		reply(ctx, m, log, msg, messages.GeneralError)
		return
	}

	if !created {
		log.InfoContext(ctx, "User already subscribed", "user_id", userID)
		reply(ctx, m, log, msg, messages.AlreadySubscribed)
		return
	}

	log.InfoContext(ctx, "User subscribed", "user_id", userID)
	reply(ctx, m, log, msg, messages.Subscribed)
}

// NewUnsubscribeHandler returns a handler for the /unsubscribe command.
func NewUnsubscribeHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(unsubscribeHandler{deps}.Handle)
}

// unsubscribeHandler removes the user's preference record.
type unsubscribeHandler struct {
	deps HandlerDeps
}

func (h unsubscribeHandler) Handle(ctx context.Context, m Messenger, update *models.Update) {
	log := h.deps.Logger.With("handler", "unsubscribe")

	msg, ok := incomingMessage(ctx, log, update)
	if !ok {
		return
	}
	userID := msg.From.ID
	messages := h.deps.Config.Messages

	deleted, err := h.deps.Store.DeletePreference(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to delete preference", "error", err, "user_id", userID)
		reply(ctx, m, log, msg, messages.GeneralError)
		return
	}

	if !deleted {
		reply(ctx, m, log, msg, messages.NotSubscribed)
		return
	}

	log.InfoContext(ctx, "User unsubscribed", "user_id", userID)
	reply(ctx, m, log, msg, messages.Unsubscribed)
}
