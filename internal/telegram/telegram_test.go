package telegram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/motivbot/internal/bot/handlers"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeRegistrar struct {
	patterns   []string
	handlers   []bot.HandlerFunc
	matchFuncs int
}

func (f *fakeRegistrar) RegisterHandler(_ bot.HandlerType, pattern string, _ bot.MatchType, h bot.HandlerFunc, _ ...bot.Middleware) string {
	f.patterns = append(f.patterns, pattern)
	f.handlers = append(f.handlers, h)
	return pattern
}

func (f *fakeRegistrar) RegisterHandlerMatchFunc(_ bot.MatchFunc, h bot.HandlerFunc, _ ...bot.Middleware) string {
	f.matchFuncs++
	f.patterns = append(f.patterns, "func")
	f.handlers = append(f.handlers, h)
	return "func"
}

type fakeCommandSetter struct {
	params *bot.SetMyCommandsParams
	err    error
}

func (f *fakeCommandSetter) SetMyCommands(_ context.Context, params *bot.SetMyCommandsParams) (bool, error) {
	f.params = params
	return f.err == nil, f.err
}

type fakeMessenger struct {
	params *bot.SendMessageParams
	err    error
}

func (f *fakeMessenger) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &models.Message{ID: 1}, nil
}

func TestApplyMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) bot.Middleware {
		return func(next bot.HandlerFunc) bot.HandlerFunc {
			return func(ctx context.Context, b *bot.Bot, u *models.Update) {
				order = append(order, name)
				next(ctx, b, u)
			}
		}
	}
	h := applyMiddleware(func(context.Context, *bot.Bot, *models.Update) {
		order = append(order, "handler")
	}, []bot.Middleware{mw("outer"), mw("inner")})

	h(context.Background(), nil, &models.Update{})

	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRegisterHandlersSkipsNil(t *testing.T) {
	t.Parallel()

	noop := func(context.Context, *bot.Bot, *models.Update) {}
	r := &fakeRegistrar{}
	err := registerHandlers(r, discardLogger(), []handlers.RegisteredHandler{
		{Pattern: "start", Handler: noop},
		{Pattern: "broken"},
		{Pattern: "help", Handler: noop},
	})
	if err != nil {
		t.Fatalf("registerHandlers: %v", err)
	}
	if len(r.patterns) != 2 || r.patterns[0] != "start" || r.patterns[1] != "help" {
		t.Errorf("registered %v", r.patterns)
	}
}

func TestRegisterHandlersPrefersMatchFunc(t *testing.T) {
	t.Parallel()

	noop := func(context.Context, *bot.Bot, *models.Update) {}
	r := &fakeRegistrar{}
	err := registerHandlers(r, discardLogger(), []handlers.RegisteredHandler{
		{Pattern: "settings", Handler: noop, MatchFunc: func(*models.Update) bool { return true }},
		{Pattern: "help", Handler: noop},
	})
	if err != nil {
		t.Fatalf("registerHandlers: %v", err)
	}
	if r.matchFuncs != 1 || len(r.patterns) != 2 || r.patterns[1] != "help" {
		t.Errorf("registered %v with %d match funcs", r.patterns, r.matchFuncs)
	}
}

func TestRegisterHandlersRejectsNilBot(t *testing.T) {
	t.Parallel()

	if err := RegisterHandlers(nil, discardLogger(), nil); err == nil {
		t.Fatal("expected error for nil bot")
	}
}

func TestSetCommands(t *testing.T) {
	t.Parallel()

	f := &fakeCommandSetter{}
	err := SetCommands(context.Background(), f, discardLogger(), []handlers.RegisteredHandler{
		{Pattern: "start", Description: "Show the welcome message"},
		{Pattern: "hidden"},
		{Pattern: "wish", Description: "Get a wish"},
	})
	if err != nil {
		t.Fatalf("SetCommands: %v", err)
	}
	want := []models.BotCommand{
		{Command: "start", Description: "Show the welcome message"},
		{Command: "wish", Description: "Get a wish"},
	}
	if len(f.params.Commands) != len(want) {
		t.Fatalf("commands = %+v", f.params.Commands)
	}
	for i := range want {
		if f.params.Commands[i] != want[i] {
			t.Errorf("command %d = %+v, want %+v", i, f.params.Commands[i], want[i])
		}
	}

	f.err = errors.New("forbidden")
	if err := SetCommands(context.Background(), f, discardLogger(), nil); err == nil {
		t.Error("expected error from failing API")
	}
}

func TestSenderSendText(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	s := NewSender(m)
	if err := s.SendText(context.Background(), 7, "hello"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if m.params.ChatID != int64(7) || m.params.Text != "hello" {
		t.Errorf("params = %+v", m.params)
	}

	if err := s.SendText(context.Background(), 7, ""); err == nil {
		t.Error("expected error for empty text")
	}

	m.err = errors.New("blocked by user")
	err := s.SendText(context.Background(), 7, "hello")
	if !errors.Is(err, m.err) {
		t.Errorf("SendText error = %v, want wrapped %v", err, m.err)
	}
}
