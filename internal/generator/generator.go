// Package generator produces the bot's wishes and quotes. Every operation
// returns usable text: backend failures are logged and replaced by a fixed
// fallback, so callers never see an error.
package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/edgard/motivbot/internal/sanitize"
)

// Backend turns a prompt into text. gemini.Client satisfies it.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Kind identifies the type of generated message.
type Kind string

// Message kinds.
const (
	KindMorningWish       Kind = "morning_wish"
	KindEveningWish       Kind = "evening_wish"
	KindMotivationalQuote Kind = "motivational_quote"
	KindWeeklyReflection  Kind = "weekly_reflection"
	KindCustomMotivation  Kind = "custom_motivation"
)

// Generator wraps a Backend with per-kind prompts and fallbacks.
type Generator struct {
	backend Backend
	policy  *sanitize.Policy
	logger  *slog.Logger
}

// New creates a Generator.
func New(backend Backend, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		backend: backend,
		policy:  sanitize.NewTelegramPolicy(),
		logger:  logger.With("component", "generator"),
	}
}

// MorningWish returns a short morning greeting.
func (g *Generator) MorningWish(ctx context.Context) string {
	return g.generate(ctx, KindMorningWish, morningWishPrompt, MorningWishFallback)
}

// EveningWish returns a short evening greeting.
func (g *Generator) EveningWish(ctx context.Context) string {
	return g.generate(ctx, KindEveningWish, eveningWishPrompt, EveningWishFallback)
}

// Wish picks the morning wish for hours in [5, 12) and the evening wish otherwise.
func (g *Generator) Wish(ctx context.Context, hour int) string {
	if hour >= 5 && hour < 12 {
		return g.MorningWish(ctx)
	}
	return g.EveningWish(ctx)
}

// MotivationalQuote returns a quote with its author.
func (g *Generator) MotivationalQuote(ctx context.Context) string {
	return g.generate(ctx, KindMotivationalQuote, motivationalQuotePrompt, MotivationalQuoteFallback)
}

// WeeklyReflection returns a start-of-week message.
func (g *Generator) WeeklyReflection(ctx context.Context) string {
	return g.generate(ctx, KindWeeklyReflection, weeklyReflectionPrompt, WeeklyReflectionFallback)
}

// CustomMotivation returns a motivational phrase about topic.
func (g *Generator) CustomMotivation(ctx context.Context, topic string) string {
	return g.generate(ctx, KindCustomMotivation,
		fmt.Sprintf(customMotivationPrompt, topic),
		CustomMotivationFallback(topic))
}

// CustomMotivationFallback is the text used when a custom motivation fails.
func CustomMotivationFallback(topic string) string {
	return fmt.Sprintf(customMotivationFallback, topic)
}

func (g *Generator) generate(ctx context.Context, kind Kind, prompt, fallback string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.ErrorContext(ctx, "Text backend panicked, using fallback", "kind", kind, "panic", r)
			result = fallback
		}
	}()

	text, err := g.backend.Generate(ctx, prompt)
	if err != nil {
		g.logger.WarnContext(ctx, "Text generation failed, using fallback", "kind", kind, "error", err)
		return fallback
	}

	// Messages go out without a parse mode, so markdown would show verbatim.
	text = g.policy.SanitizeText(text)
	if text == "" {
		g.logger.WarnContext(ctx, "Text generation returned empty text, using fallback", "kind", kind)
		return fallback
	}

	g.logger.DebugContext(ctx, "Generated text", "kind", kind, "length", len(text))
	return text
}
