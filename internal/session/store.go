// Package session persists the device session tokens issued at sign-in.
package session

import (
	"context"
	"time"

	"taskr/internal/domain"
	"taskr/internal/errors"
	"taskr/internal/logging"
	"taskr/internal/repository/sqlite"
)

const (
	// IDKey and HashKey name the two slots holding the session tokens.
	IDKey   = "SID"
	HashKey = "HSID"

	// DefaultTTLDays is how long a stored session remains usable.
	DefaultTTLDays = 90
)

// Store reads and writes the session tokens in the local store.
type Store struct {
	repo       sqlite.Repository
	defaultTTL int
	now        func() time.Time
}

// NewStore creates a Store; ttlDays <= 0 selects DefaultTTLDays.
func NewStore(repo sqlite.Repository, ttlDays int) *Store {
	if ttlDays <= 0 {
		ttlDays = DefaultTTLDays
	}
	return &Store{repo: repo, defaultTTL: ttlDays, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Set stores both tokens with a shared expiry ttlDays from now. A ttlDays of
// zero or less uses the store's default lifetime.
func (s *Store) Set(ctx context.Context, id, hash string, ttlDays int) error {
	if id == "" || hash == "" {
		return errors.NewInvalidInputError("session", nil, "session id and hash are both required")
	}
	if ttlDays <= 0 {
		ttlDays = s.defaultTTL
	}

	// Both tokens are written together so a failed write never pairs a new
	// id with an old hash.
	expires := s.now().AddDate(0, 0, ttlDays)
	err := s.repo.PutSlots(ctx,
		&sqlite.Slot{Key: IDKey, Value: id, ExpiresAt: &expires},
		&sqlite.Slot{Key: HashKey, Value: hash, ExpiresAt: &expires},
	)
	if err != nil {
		return err
	}

	logging.Debugf("session stored, expires %s\n", expires.Format(time.RFC3339))
	return nil
}

// Get returns the stored session, or nil when either token is missing or
// expired.
func (s *Store) Get(ctx context.Context) (*domain.Session, error) {
	now := s.now()

	id, err := s.value(ctx, IDKey, now)
	if err != nil {
		return nil, err
	}
	hash, err := s.value(ctx, HashKey, now)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{SessionID: id, SessionHash: hash}
	if !session.IsComplete() {
		return nil, nil
	}
	return session, nil
}

// Clear removes both tokens. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	removed, err := s.repo.DeleteSlots(ctx, IDKey, HashKey)
	if err != nil {
		return err
	}
	logging.Debugf("session cleared (%d slots)\n", removed)
	return nil
}

// Prune deletes every expired slot from the store.
func (s *Store) Prune(ctx context.Context) error {
	removed, err := s.repo.PurgeExpiredSlots(ctx, s.now())
	if err != nil {
		return err
	}
	if removed > 0 {
		logging.Debugf("pruned %d expired slots\n", removed)
	}
	return nil
}

// value returns "" for a missing or expired slot.
func (s *Store) value(ctx context.Context, key string, now time.Time) (string, error) {
	slot, err := s.repo.GetSlot(ctx, key)
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if slot.IsExpired(now) {
		return "", nil
	}
	return slot.Value, nil
}
