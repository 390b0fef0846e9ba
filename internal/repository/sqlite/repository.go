package sqlite

import (
	"context"
	"database/sql"
	"time"

	"taskr/internal/errors"
	"taskr/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for local storage operations
type Repository interface {
	// Slot operations
	PutSlot(ctx context.Context, slot *Slot) error
	PutSlots(ctx context.Context, slots ...*Slot) error
	GetSlot(ctx context.Context, key string) (*Slot, error)
	DeleteSlot(ctx context.Context, key string) error
	DeleteSlots(ctx context.Context, keys ...string) (int64, error)
	PurgeExpiredSlots(ctx context.Context, now time.Time) (int64, error)

	// Preference operations
	SetPreference(ctx context.Context, pref *Preference) error
	GetPreference(ctx context.Context, name string) (*Preference, error)
	DeletePreference(ctx context.Context, name string) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (creating if needed) the database at dbPath and runs migrations
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps ":memory:" databases and write ordering consistent.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

const upsertSlotQuery = `
	INSERT INTO slots (key, value, expires_at, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		expires_at = excluded.expires_at,
		updated_at = excluded.updated_at`

// PutSlot inserts or replaces a slot
func (r *SQLiteRepository) PutSlot(ctx context.Context, slot *Slot) error {
	return r.PutSlots(ctx, slot)
}

// PutSlots inserts or replaces every slot in one transaction: either all of
// them are written or none is.
func (r *SQLiteRepository) PutSlots(ctx context.Context, slots ...*Slot) error {
	updatedAt := r.now().UTC().Truncate(time.Second)

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		for _, slot := range slots {
			if _, err := tx.ExecContext(ctx, upsertSlotQuery, slot.Key, slot.Value, FormatTimePtrForDB(slot.ExpiresAt), FormatTimeForDB(updatedAt)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return HandleDatabaseError("put slots", err)
	}

	for _, slot := range slots {
		slot.UpdatedAt = updatedAt
	}
	return nil
}

// GetSlot retrieves a slot by key. Expired slots are still returned; callers
// decide how to treat them.
func (r *SQLiteRepository) GetSlot(ctx context.Context, key string) (*Slot, error) {
	query := `
	SELECT key, value, expires_at, updated_at
	FROM slots
	WHERE key = ?`

	return QuerySingle(ctx, r.db, query, ScanSlot, "slot", key)
}

// DeleteSlot deletes a slot by key
func (r *SQLiteRepository) DeleteSlot(ctx context.Context, key string) error {
	query := `DELETE FROM slots WHERE key = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "slot", key, key)
}

// DeleteSlots deletes every listed slot that exists and reports how many were removed
func (r *SQLiteRepository) DeleteSlots(ctx context.Context, keys ...string) (int64, error) {
	var removed int64
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		for _, key := range keys {
			n, err := CountRowsAffected(ctx, tx, `DELETE FROM slots WHERE key = ?`, key)
			if err != nil {
				return err
			}
			removed += n
		}
		return nil
	})
	if err != nil {
		return 0, HandleDatabaseError("delete slots", err)
	}
	return removed, nil
}

// PurgeExpiredSlots removes slots whose expiry is at or before now
func (r *SQLiteRepository) PurgeExpiredSlots(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM slots WHERE expires_at IS NOT NULL AND expires_at <= ?`

	n, err := CountRowsAffected(ctx, r.db, query, FormatTimeForDB(now))
	if err != nil {
		return 0, HandleDatabaseError("purge expired slots", err)
	}
	return n, nil
}

// SetPreference inserts or replaces a preference
func (r *SQLiteRepository) SetPreference(ctx context.Context, pref *Preference) error {
	pref.UpdatedAt = r.now().UTC().Truncate(time.Second)

	query := `
	INSERT INTO preferences (name, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, pref.Name, pref.Value, FormatTimeForDB(pref.UpdatedAt)); err != nil {
		return HandleDatabaseError("set preference", err)
	}
	return nil
}

// GetPreference retrieves a preference by name
func (r *SQLiteRepository) GetPreference(ctx context.Context, name string) (*Preference, error) {
	query := `SELECT name, value, updated_at FROM preferences WHERE name = ?`
	return QuerySingle(ctx, r.db, query, ScanPreference, "preference", name)
}

// DeletePreference deletes a preference by name
func (r *SQLiteRepository) DeletePreference(ctx context.Context, name string) error {
	query := `DELETE FROM preferences WHERE name = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "preference", name, name)
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
