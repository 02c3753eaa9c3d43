package handlers

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// incomingMessage returns the message of update if it has a sender.
func incomingMessage(ctx context.Context, log *slog.Logger, update *models.Update) (*models.Message, bool) {
	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Received update with nil message or sender", "update_id", update.ID)
		return nil, false
	}
	return update.Message, true
}

// reply answers msg, quoting it.
func reply(ctx context.Context, m Messenger, log *slog.Logger, msg *models.Message, text string) {
	_, err := m.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		Text:            text,
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", msg.Chat.ID)
	}
}

// send posts text to chatID without quoting.
func send(ctx context.Context, m Messenger, log *slog.Logger, chatID int64, text string) {
	_, err := m.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
	}
}

// commandArgs returns the text after the leading command token, trimmed.
// "/custom   learning Go " yields "learning Go".
func commandArgs(text string) string {
	text = strings.TrimSpace(text)
	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(text[idx:])
}

// firstArg returns the first whitespace-separated argument after the command.
func firstArg(text string) (string, bool) {
	fields := strings.Fields(commandArgs(text))
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// leadingCommand returns the bot command that opens msg, split into its name
// and the username after "@", if any.
func leadingCommand(msg *models.Message) (name, target string, ok bool) {
	if msg == nil {
		return "", "", false
	}
	for _, e := range msg.Entities {
		if e.Type != models.MessageEntityTypeBotCommand || e.Offset != 0 {
			continue
		}
		if e.Length < 2 || e.Length > len(msg.Text) {
			return "", "", false
		}
		name, target, _ = strings.Cut(msg.Text[1:e.Length], "@")
		return name, target, true
	}
	return "", "", false
}

func withBotName(text, username string) string {
	if username == "" {
		return text
	}
	return strings.ReplaceAll(text, "@botname", "@"+username)
}
