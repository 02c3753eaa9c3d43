package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TimeLayout is the 24-hour time-of-day format used for delivery times.
const TimeLayout = "15:04"

// Default delivery settings applied when a user subscribes.
const (
	DefaultMorningTime = "08:00"
	DefaultEveningTime = "20:00"
)

// ErrInvalidTime is returned for time-of-day values that are not valid HH:MM.
var ErrInvalidTime = errors.New("invalid time of day")

var validate = validator.New()

// UserPreference holds the delivery settings of a single subscriber.
// A record exists only while the user is subscribed.
type UserPreference struct {
	UserID    int64     `db:"user_id"    validate:"required"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	MorningTime    string `db:"morning_time"    validate:"required,datetime=15:04"`
	EveningTime    string `db:"evening_time"    validate:"required,datetime=15:04"`
	SendMorning    bool   `db:"send_morning"`
	SendEvening    bool   `db:"send_evening"`
	SendMotivation bool   `db:"send_motivation"`
}

// NewUserPreference returns a preference with every default applied.
func NewUserPreference(userID int64) *UserPreference {
	return &UserPreference{
		UserID:         userID,
		MorningTime:    DefaultMorningTime,
		EveningTime:    DefaultEveningTime,
		SendMorning:    true,
		SendEvening:    true,
		SendMotivation: true,
	}
}

// Validate checks the user id and both delivery times.
func (p *UserPreference) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid preference for user %d: %w", p.UserID, err)
	}
	return nil
}

// ParseTimeOfDay validates a 24-hour HH:MM token and returns it zero-padded,
// so "7:30" becomes "07:30". Out-of-range values such as "25:99" are rejected.
func ParseTimeOfDay(s string) (string, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t.Format(TimeLayout), nil
}
