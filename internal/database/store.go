package database

import (
	"context"
	"errors"
)

// ErrPreferenceNotFound is returned by UpdatePreference for users without a subscription.
var ErrPreferenceNotFound = errors.New("preference not found")

// Store defines the preference storage operations shared by the command
// handlers and the scheduled delivery scans.
//
// Every method is atomic with respect to the others. Returned preferences
// are copies; mutating them has no effect until passed back through
// SavePreference or changed inside UpdatePreference.
type Store interface {
	// Ping checks the backing storage.
	Ping(ctx context.Context) error

	// GetPreference returns the user's preference. Returns nil, nil if not found.
	GetPreference(ctx context.Context, userID int64) (*UserPreference, error)

	// SavePreference inserts or overwrites a preference.
	SavePreference(ctx context.Context, pref *UserPreference) error

	// CreatePreference inserts pref only if the user has no record yet.
	// It reports whether a record was created.
	CreatePreference(ctx context.Context, pref *UserPreference) (bool, error)

	// UpdatePreference applies fn to the user's record and stores the result.
	// If fn returns an error nothing is written.
	UpdatePreference(ctx context.Context, userID int64, fn func(*UserPreference) error) (*UserPreference, error)

	// DeletePreference removes the user's record and reports whether one existed.
	DeletePreference(ctx context.Context, userID int64) (bool, error)

	// ListPreferences returns a snapshot of all preferences ordered by user id.
	ListPreferences(ctx context.Context) ([]UserPreference, error)

	// RunSQLMaintenance compacts the backing storage. It is a no-op for
	// backends without on-disk state.
	RunSQLMaintenance(ctx context.Context) error

	// Close releases the storage.
	Close() error
}
