package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

const selectPreference = `
	SELECT user_id, morning_time, evening_time, send_morning, send_evening, send_motivation, created_at, updated_at
	FROM user_preferences`

// sqlxStore implements Store on top of an SQLite database.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLStore creates a Store backed by sqlx. The database must already
// carry the user_preferences schema (see NewDB).
func NewSQLStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store", "backend", "sqlite"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) GetPreference(ctx context.Context, userID int64) (*UserPreference, error) {
	var pref UserPreference
	err := s.db.GetContext(ctx, &pref, selectPreference+` WHERE user_id = ?`, userID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No preference found", "user_id", userID)
		return nil, nil

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching preference", "user_id", userID, "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting preference", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get preference for user %d: %w", userID, err)
	}

	return &pref, nil
}

func (s *sqlxStore) SavePreference(ctx context.Context, pref *UserPreference) error {
	if pref == nil {
		return fmt.Errorf("cannot save nil preference")
	}
	if err := pref.Validate(); err != nil {
		return err
	}

	row := *pref
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	query := `
		INSERT INTO user_preferences (user_id, morning_time, evening_time, send_morning, send_evening, send_motivation, created_at, updated_at)
		VALUES (:user_id, :morning_time, :evening_time, :send_morning, :send_evening, :send_motivation, :created_at, :updated_at)
		ON CONFLICT(user_id) DO UPDATE SET
			morning_time = excluded.morning_time,
			evening_time = excluded.evening_time,
			send_morning = excluded.send_morning,
			send_evening = excluded.send_evening,
			send_motivation = excluded.send_motivation,
			updated_at = excluded.updated_at;`

	if _, err := s.db.NamedExecContext(ctx, query, &row); err != nil {
		s.logger.ErrorContext(ctx, "Error saving preference", "user_id", pref.UserID, "error", err)
		return fmt.Errorf("failed to save preference for user %d: %w", pref.UserID, err)
	}

	s.logger.DebugContext(ctx, "Preference saved", "user_id", pref.UserID)
	return nil
}

func (s *sqlxStore) CreatePreference(ctx context.Context, pref *UserPreference) (bool, error) {
	if pref == nil {
		return false, fmt.Errorf("cannot create nil preference")
	}
	if err := pref.Validate(); err != nil {
		return false, err
	}

	row := *pref
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	query := `
		INSERT INTO user_preferences (user_id, morning_time, evening_time, send_morning, send_evening, send_motivation, created_at, updated_at)
		VALUES (:user_id, :morning_time, :evening_time, :send_morning, :send_evening, :send_motivation, :created_at, :updated_at)
		ON CONFLICT(user_id) DO NOTHING;`

	result, err := s.db.NamedExecContext(ctx, query, &row)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error creating preference", "user_id", pref.UserID, "error", err)
		return false, fmt.Errorf("failed to create preference for user %d: %w", pref.UserID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	s.logger.DebugContext(ctx, "Preference create attempted", "user_id", pref.UserID, "created", affected == 1)
	return affected == 1, nil
}

func (s *sqlxStore) UpdatePreference(ctx context.Context, userID int64, fn func(*UserPreference) error) (*UserPreference, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for preference update", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	var pref UserPreference
	err = tx.GetContext(ctx, &pref, selectPreference+` WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPreferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preference for user %d: %w", userID, err)
	}

	createdAt := pref.CreatedAt
	if err := fn(&pref); err != nil {
		return nil, err
	}
	pref.UserID = userID
	pref.CreatedAt = createdAt
	if err := pref.Validate(); err != nil {
		return nil, err
	}
	pref.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE user_preferences SET
			morning_time = :morning_time,
			evening_time = :evening_time,
			send_morning = :send_morning,
			send_evening = :send_evening,
			send_motivation = :send_motivation,
			updated_at = :updated_at
		WHERE user_id = :user_id;`
	if _, err := tx.NamedExecContext(ctx, query, &pref); err != nil {
		s.logger.ErrorContext(ctx, "Error updating preference", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to update preference for user %d: %w", userID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	s.logger.DebugContext(ctx, "Preference updated", "user_id", userID)
	return &pref, nil
}

func (s *sqlxStore) DeletePreference(ctx context.Context, userID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_preferences WHERE user_id = ?`, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting preference", "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to delete preference for user %d: %w", userID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *sqlxStore) ListPreferences(ctx context.Context) ([]UserPreference, error) {
	var prefs []UserPreference
	if err := s.db.SelectContext(ctx, &prefs, selectPreference+` ORDER BY user_id`); err != nil {
		s.logger.ErrorContext(ctx, "Error listing preferences", "error", err)
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	return prefs, nil
}

// RunSQLMaintenance executes VACUUM on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")
	started := time.Now()

	// VACUUM cannot run inside a transaction.
	_, err := s.db.ExecContext(ctx, "VACUUM;")
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)
	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully", "duration", time.Since(started).Round(time.Millisecond))
	return nil
}

func (s *sqlxStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Error closing database connection", "error", err)
		return err
	}
	s.logger.Info("Database connection closed successfully.")
	return nil
}
