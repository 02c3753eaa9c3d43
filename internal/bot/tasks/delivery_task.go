package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/edgard/motivbot/internal/config"
	"github.com/edgard/motivbot/internal/database"
)

// scanMinuteLayout identifies a wall-clock minute for the once-per-minute check.
const scanMinuteLayout = "2006-01-02 15:04"

type deliveryKind int

const (
	morningDelivery deliveryKind = iota
	eveningDelivery
)

func (k deliveryKind) String() string {
	if k == eveningDelivery {
		return config.TaskEveningDelivery
	}
	return config.TaskMorningDelivery
}

// deliveryTask scans the store for users whose delivery time equals the
// current minute and sends them their messages. The scheduler may fire it
// several times a minute; each minute is scanned once.
type deliveryTask struct {
	deps TaskDeps
	kind deliveryKind
	log  *slog.Logger

	mu          sync.Mutex
	lastScanned string
}

func newDeliveryTask(deps TaskDeps, kind deliveryKind) *deliveryTask {
	return &deliveryTask{
		deps: deps,
		kind: kind,
		log:  deps.Logger.With("task", kind.String()),
	}
}

// Run performs one scan. It returns an error summarising failed users;
// a failure for one user does not stop delivery to the others.
func (t *deliveryTask) Run(ctx context.Context) error {
	now := t.deps.now()
	minute := now.Format(scanMinuteLayout)

	if !t.claim(minute) {
		t.log.DebugContext(ctx, "Minute already scanned", "minute", minute)
		return nil
	}

	prefs, err := t.deps.Store.ListPreferences(ctx)
	if err != nil {
		t.release(minute)
		return fmt.Errorf("failed to list preferences: %w", err)
	}

	hhmm := now.Format(database.TimeLayout)
	var due, delivered int
	var errs []error
	for _, pref := range prefs {
		if !t.isDue(pref, hhmm) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		due++

		if err := t.deliver(ctx, pref, now); err != nil {
			t.log.ErrorContext(ctx, "Delivery failed", "user_id", pref.UserID, "error", err)
			errs = append(errs, fmt.Errorf("user %d: %w", pref.UserID, err))
			continue
		}
		delivered++
	}

	if due > 0 {
		t.log.InfoContext(ctx, "Delivery scan finished", "time", hhmm, "due", due, "delivered", delivered)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d deliveries failed: %w", len(errs), due, errors.Join(errs...))
	}
	return nil
}

// claim marks minute as scanned and reports whether it was not already.
func (t *deliveryTask) claim(minute string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastScanned == minute {
		return false
	}
	t.lastScanned = minute
	return true
}

// release lets a later tick retry minute after a failed listing.
func (t *deliveryTask) release(minute string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastScanned == minute {
		t.lastScanned = ""
	}
}

func (t *deliveryTask) isDue(pref database.UserPreference, hhmm string) bool {
	if t.kind == eveningDelivery {
		return pref.SendEvening && pref.EveningTime == hhmm
	}
	return pref.SendMorning && pref.MorningTime == hhmm
}

// deliver sends the wish, then the optional quote and, on Monday mornings,
// the weekly reflection. The first send error ends the sequence.
func (t *deliveryTask) deliver(ctx context.Context, pref database.UserPreference, now time.Time) error {
	gen := t.deps.Generator
	chatID := pref.UserID

	wish := gen.MorningWish
	if t.kind == eveningDelivery {
		wish = gen.EveningWish
	}
	if err := t.deps.Sender.SendText(ctx, chatID, wish(ctx)); err != nil {
		return fmt.Errorf("wish: %w", err)
	}

	if pref.SendMotivation {
		if err := t.deps.pause(ctx); err != nil {
			return err
		}
		if err := t.deps.Sender.SendText(ctx, chatID, gen.MotivationalQuote(ctx)); err != nil {
			return fmt.Errorf("quote: %w", err)
		}
	}

	if t.kind == morningDelivery && now.Weekday() == time.Monday {
		if err := t.deps.pause(ctx); err != nil {
			return err
		}
		if err := t.deps.Sender.SendText(ctx, chatID, gen.WeeklyReflection(ctx)); err != nil {
			return fmt.Errorf("weekly reflection: %w", err)
		}
	}

	t.log.DebugContext(ctx, "Delivered messages", "user_id", pref.UserID)
	return nil
}
