package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/motivbot/internal/config"
	"github.com/edgard/motivbot/internal/database"
)

// NewSettingsHandler returns a handler for the /settings command.
func NewSettingsHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(settingsHandler{deps}.Handle)
}

// settingsHandler renders the subscriber's current delivery settings.
type settingsHandler struct {
	deps HandlerDeps
}

func (h settingsHandler) Handle(ctx context.Context, m Messenger, update *models.Update) {
	log := h.deps.Logger.With("handler", "settings")

	msg, ok := incomingMessage(ctx, log, update)
	if !ok {
		return
	}
	messages := h.deps.Config.Messages

	pref, err := h.deps.Store.GetPreference(ctx, msg.From.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load preference", "error", err, "user_id", msg.From.ID)
		reply(ctx, m, log, msg, messages.GeneralError)
		return
	}
	if pref == nil {
		reply(ctx, m, log, msg, messages.SubscribeFirst)
		return
	}

	reply(ctx, m, log, msg, RenderSettings(&messages, pref))
}

// RenderSettings formats pref with the configured settings template.
func RenderSettings(messages *config.MessagesConfig, pref *database.UserPreference) string {
	return fmt.Sprintf(messages.Settings,
		messages.OnOff(pref.SendMorning), pref.MorningTime,
		messages.OnOff(pref.SendEvening), pref.EveningTime,
		messages.OnOff(pref.SendMotivation),
	)
}

// timeSlot selects which delivery time a /set_* command changes.
type timeSlot int

const (
	morningSlot timeSlot = iota
	eveningSlot
)

// NewSetMorningHandler returns a handler for the /set_morning command.
func NewSetMorningHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(setTimeHandler{deps: deps, slot: morningSlot}.Handle)
}

// NewSetEveningHandler returns a handler for the /set_evening command.
func NewSetEveningHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(setTimeHandler{deps: deps, slot: eveningSlot}.Handle)
}

// setTimeHandler validates an HH:MM argument and stores it as the morning or
// evening delivery time.
type setTimeHandler struct {
	deps HandlerDeps
	slot timeSlot
}

func (h setTimeHandler) Handle(ctx context.Context, m Messenger, update *models.Update) {
	name, usage, done := "set_morning", h.deps.Config.Messages.SetMorningUsage, h.deps.Config.Messages.SetMorningDone
	if h.slot == eveningSlot {
		name, usage, done = "set_evening", h.deps.Config.Messages.SetEveningUsage, h.deps.Config.Messages.SetEveningDone
	}
	log := h.deps.Logger.With("handler", name)

	msg, ok := incomingMessage(ctx, log, update)
	if !ok {
		return
	}

	// Non-subscribers get the subscribe-first reply whatever the argument.
	pref, err := h.deps.Store.GetPreference(ctx, msg.From.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load preference", "error", err, "user_id", msg.From.ID)
		reply(ctx, m, log, msg, h.deps.Config.Messages.GeneralError)
		return
	}
	if pref == nil {
		reply(ctx, m, log, msg, h.deps.Config.Messages.SubscribeFirst)
		return
	}

	arg, ok := firstArg(msg.Text)
	if !ok {
		reply(ctx, m, log, msg, usage)
		return
	}
	value, err := database.ParseTimeOfDay(arg)
	if err != nil {
		log.InfoContext(ctx, "Rejected time value", "user_id", msg.From.ID, "value", arg)
		reply(ctx, m, log, msg, usage)
		return
	}

	_, err = h.deps.Store.UpdatePreference(ctx, msg.From.ID, func(p *database.UserPreference) error {
		if h.slot == eveningSlot {
			p.EveningTime = value
		} else {
			p.MorningTime = value
		}
		return nil
	})
	if handleUpdateError(ctx, h.deps, m, log, msg, err) {
		return
	}

	log.InfoContext(ctx, "Delivery time updated", "user_id", msg.From.ID, "value", value)
	reply(ctx, m, log, msg, fmt.Sprintf(done, value))
}

// preferenceFlag selects which boolean a /toggle_* command flips.
type preferenceFlag int

const (
	morningFlag preferenceFlag = iota
	eveningFlag
	motivationFlag
)

// NewToggleMorningHandler returns a handler for the /toggle_morning command.
func NewToggleMorningHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(toggleHandler{deps: deps, flag: morningFlag}.Handle)
}

// NewToggleEveningHandler returns a handler for the /toggle_evening command.
func NewToggleEveningHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(toggleHandler{deps: deps, flag: eveningFlag}.Handle)
}

// NewToggleMotivationHandler returns a handler for the /toggle_motivation command.
func NewToggleMotivationHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(toggleHandler{deps: deps, flag: motivationFlag}.Handle)
}

// toggleHandler flips one delivery flag and reports its new state.
type toggleHandler struct {
	deps HandlerDeps
	flag preferenceFlag
}

func (h toggleHandler) field(p *database.UserPreference) *bool {
	switch h.flag {
	case eveningFlag:
		return &p.SendEvening
	case motivationFlag:
		return &p.SendMotivation
	default:
		return &p.SendMorning
	}
}

func (h toggleHandler) Handle(ctx context.Context, m Messenger, update *models.Update) {
	messages := h.deps.Config.Messages
	name, template := "toggle_morning", messages.ToggleMorning
	switch h.flag {
	case eveningFlag:
		name, template = "toggle_evening", messages.ToggleEvening
	case motivationFlag:
		name, template = "toggle_motivation", messages.ToggleMotivation
	}
	log := h.deps.Logger.With("handler", name)

	msg, ok := incomingMessage(ctx, log, update)
	if !ok {
		return
	}

	pref, err := h.deps.Store.UpdatePreference(ctx, msg.From.ID, func(p *database.UserPreference) error {
		v := h.field(p)
		*v = !*v
		return nil
	})
	if handleUpdateError(ctx, h.deps, m, log, msg, err) {
		return
	}

	state := *h.field(pref)
	log.InfoContext(ctx, "Delivery flag toggled", "user_id", msg.From.ID, "enabled", state)
	reply(ctx, m, log, msg, fmt.Sprintf(template, messages.OnOff(state)))
}

// handleUpdateError replies to a failed UpdatePreference and reports
// whether the handler should stop.
func handleUpdateError(ctx context.Context, deps HandlerDeps, m Messenger, log *slog.Logger, msg *models.Message, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, database.ErrPreferenceNotFound):
		reply(ctx, m, log, msg, deps.Config.Messages.SubscribeFirst)
	default:
		log.ErrorContext(ctx, "Failed to update preference", "error", err, "user_id", msg.From.ID)
		reply(ctx, m, log, msg, deps.Config.Messages.GeneralError)
	}
	return true
}
