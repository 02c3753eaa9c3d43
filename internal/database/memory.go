package database

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// memoryStore keeps preferences in a mutex-guarded map. Its contents are
// lost when the process exits.
type memoryStore struct {
	mu     sync.RWMutex
	prefs  map[int64]UserPreference
	now    func() time.Time
	logger *slog.Logger
}

// NewMemoryStore creates an in-memory Store.
func NewMemoryStore(logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &memoryStore{
		prefs:  make(map[int64]UserPreference),
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With("component", "store", "backend", "memory"),
	}
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *memoryStore) GetPreference(ctx context.Context, userID int64) (*UserPreference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	pref, ok := s.prefs[userID]
	if !ok {
		s.logger.DebugContext(ctx, "No preference found", "user_id", userID)
		return nil, nil
	}
	return &pref, nil
}

func (s *memoryStore) SavePreference(ctx context.Context, pref *UserPreference) error {
	if pref == nil {
		return fmt.Errorf("cannot save nil preference")
	}
	if err := pref.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stored := *pref
	if existing, ok := s.prefs[pref.UserID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.prefs[pref.UserID] = stored

	s.logger.DebugContext(ctx, "Preference saved", "user_id", pref.UserID)
	return nil
}

func (s *memoryStore) CreatePreference(ctx context.Context, pref *UserPreference) (bool, error) {
	if pref == nil {
		return false, fmt.Errorf("cannot create nil preference")
	}
	if err := pref.Validate(); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prefs[pref.UserID]; ok {
		return false, nil
	}

	now := s.now()
	stored := *pref
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.prefs[pref.UserID] = stored

	s.logger.DebugContext(ctx, "Preference created", "user_id", pref.UserID)
	return true, nil
}

func (s *memoryStore) UpdatePreference(ctx context.Context, userID int64, fn func(*UserPreference) error) (*UserPreference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.prefs[userID]
	if !ok {
		return nil, ErrPreferenceNotFound
	}

	updated := current
	if err := fn(&updated); err != nil {
		return nil, err
	}
	updated.UserID = userID
	updated.CreatedAt = current.CreatedAt
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.now()
	s.prefs[userID] = updated

	s.logger.DebugContext(ctx, "Preference updated", "user_id", userID)
	result := updated
	return &result, nil
}

func (s *memoryStore) DeletePreference(ctx context.Context, userID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prefs[userID]; !ok {
		return false, nil
	}
	delete(s.prefs, userID)

	s.logger.DebugContext(ctx, "Preference deleted", "user_id", userID)
	return true, nil
}

func (s *memoryStore) ListPreferences(ctx context.Context) ([]UserPreference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	prefs := make([]UserPreference, 0, len(s.prefs))
	for _, p := range s.prefs {
		prefs = append(prefs, p)
	}
	s.mu.RUnlock()

	slices.SortFunc(prefs, func(a, b UserPreference) int {
		return cmp.Compare(a.UserID, b.UserID)
	})
	return prefs, nil
}

func (s *memoryStore) RunSQLMaintenance(ctx context.Context) error {
	return ctx.Err()
}

func (s *memoryStore) Close() error {
	return nil
}
