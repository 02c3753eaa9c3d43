package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Messenger sends Telegram messages. *bot.Bot satisfies it.
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Sender delivers plain text to a chat on behalf of background tasks.
type Sender struct {
	m Messenger
}

// NewSender creates a Sender backed by m.
func NewSender(m Messenger) *Sender {
	return &Sender{m: m}
}

// SendText sends text to chatID.
func (s *Sender) SendText(ctx context.Context, chatID int64, text string) error {
	if text == "" {
		return fmt.Errorf("refusing to send empty message to chat %d", chatID)
	}
	if _, err := s.m.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	return nil
}
