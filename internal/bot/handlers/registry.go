package handlers

import (
	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// RegisteredHandler represents a command handler with its description and middleware.
// It encapsulates all information needed to register and document a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Description string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
	// MatchFunc, when set, is used instead of Pattern and MatchType.
	MatchFunc tgbot.MatchFunc
}

// RegisterAllCommands returns every bot command in the order it is shown in
// the Telegram command menu.
func RegisterAllCommands(deps HandlerDeps) []RegisteredHandler {
	command := func(pattern, description string, h tgbot.HandlerFunc) RegisteredHandler {
		return RegisteredHandler{
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     pattern,
			Description: description,
			Handler:     h,
			MatchType:   tgbot.MatchTypeCommandStartOnly,
			MatchFunc:   matchCommand(deps, pattern),
		}
	}

	return []RegisteredHandler{
		command("start", "Show the welcome message", NewStartHandler(deps)),
		command("help", "List available commands", NewHelpHandler(deps)),
		command("subscribe", "Subscribe to daily messages", NewSubscribeHandler(deps)),
		command("unsubscribe", "Stop daily messages", NewUnsubscribeHandler(deps)),
		command("motivate", "Get a motivational quote", NewMotivateHandler(deps)),
		command("wish", "Get a wish for the time of day", NewWishHandler(deps)),
		command("custom", "Motivation on a topic: /custom <topic>", NewCustomHandler(deps)),
		command("settings", "Show your delivery settings", NewSettingsHandler(deps)),
		command("set_morning", "Set morning time: /set_morning HH:MM", NewSetMorningHandler(deps)),
		command("set_evening", "Set evening time: /set_evening HH:MM", NewSetEveningHandler(deps)),
		command("toggle_morning", "Turn morning messages on or off", NewToggleMorningHandler(deps)),
		command("toggle_evening", "Turn evening messages on or off", NewToggleEveningHandler(deps)),
		command("toggle_motivation", "Turn morning quotes on or off", NewToggleMotivationHandler(deps)),
	}
}

// matchCommand matches messages starting with /pattern or /pattern@username,
// where username is the bot's own. Telegram clients append the suffix in
// group chats.
func matchCommand(deps HandlerDeps, pattern string) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		name, target, ok := leadingCommand(update.Message)
		return ok && name == pattern && deps.addressedToBot(target)
	}
}
