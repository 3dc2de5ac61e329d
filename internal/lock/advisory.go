// Package lock serializes writers of the records database with MySQL
// advisory locks.
package lock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrLockTimeout is returned when another writer holds the lock past the timeout.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// Common timeout values for lock acquisition (in seconds).
const (
	TimeoutImmediate = 0
	TimeoutShort     = 1
	TimeoutMedium    = 10
	// TimeoutInfinite waits until the lock is acquired. MySQL treats negative
	// values as an infinite wait.
	TimeoutInfinite = -1
)

// AdvisoryLock is a named MySQL lock taken with GET_LOCK().
//
// GET_LOCK is owned by a session, so the lock pins one connection from the
// pool for as long as it is held and releases it with the lock.
type AdvisoryLock struct {
	db       *sql.DB
	conn     *sql.Conn
	lockName string
}

// NewAdvisoryLock creates a lock with the given name. Nothing is acquired
// until AcquireLock is called.
func NewAdvisoryLock(db *sql.DB, lockName string) *AdvisoryLock {
	return &AdvisoryLock{
		db:       db,
		lockName: lockName,
	}
}

// AcquireLock attempts to acquire the lock, waiting up to timeoutSeconds.
// It returns false without error when the wait timed out.
//
// MySQL GET_LOCK() return values:
//   - 1: lock obtained
//   - 0: timed out
//   - NULL: an error occurred (thread killed, out of memory)
func (a *AdvisoryLock) AcquireLock(ctx context.Context, timeoutSeconds int) (bool, error) {
	if a.conn != nil {
		return true, nil
	}

	conn, err := a.db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to reserve connection for lock %q: %w", a.lockName, err)
	}

	var result sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", a.lockName, timeoutSeconds).Scan(&result); err != nil {
		conn.Close()
		return false, fmt.Errorf("failed to execute GET_LOCK: %w", err)
	}

	if !result.Valid {
		conn.Close()
		return false, fmt.Errorf("GET_LOCK returned NULL for lock %q (possible database error)", a.lockName)
	}

	switch result.Int64 {
	case 1:
		a.conn = conn
		return true, nil
	case 0:
		conn.Close()
		return false, nil
	default:
		conn.Close()
		return false, fmt.Errorf("unexpected GET_LOCK return value: %d", result.Int64)
	}
}

// ReleaseLock releases the lock and returns its connection to the pool.
// It returns false when the lock was not held.
//
// MySQL RELEASE_LOCK() return values:
//   - 1: released
//   - 0: held by another session
//   - NULL: the named lock did not exist
func (a *AdvisoryLock) ReleaseLock(ctx context.Context) (bool, error) {
	if a.conn == nil {
		return false, nil
	}
	conn := a.conn
	a.conn = nil
	defer conn.Close()

	var result sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT RELEASE_LOCK(?)", a.lockName).Scan(&result); err != nil {
		return false, fmt.Errorf("failed to execute RELEASE_LOCK: %w", err)
	}

	if !result.Valid {
		return false, fmt.Errorf("RELEASE_LOCK returned NULL for lock %q (lock did not exist)", a.lockName)
	}

	switch result.Int64 {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected RELEASE_LOCK return value: %d", result.Int64)
	}
}

// IsHeld reports whether this instance holds the lock.
func (a *AdvisoryLock) IsHeld() bool {
	return a.conn != nil
}

// LockName returns the name of the advisory lock.
func (a *AdvisoryLock) LockName() string {
	return a.lockName
}

// GenerateLockName builds the lock name for writers of one database.
// Lock names follow the format "swimrecords:{scope}:{database}".
//
// Example: GenerateLockName("import", "team") → "swimrecords:import:team"
func GenerateLockName(scope, database string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, database)

	name := fmt.Sprintf("swimrecords:%s:%s", scope, sanitized)
	// MySQL rejects lock names longer than 64 characters.
	if len(name) > 64 {
		name = name[:64]
	}
	return name
}

// NewImportLock creates the lock taken by CSV imports into database.
func NewImportLock(db *sql.DB, database string) *AdvisoryLock {
	return NewAdvisoryLock(db, GenerateLockName("import", database))
}

// WithLock runs fn while holding the lock. The lock is released even when fn
// panics.
//
// Example:
//
//	l := lock.NewImportLock(db, "team")
//	err := l.WithLock(ctx, lock.TimeoutMedium, func() error {
//	    return store.InsertPerformances(ctx, rows)
//	})
//	if errors.Is(err, lock.ErrLockTimeout) {
//	    // another import is running
//	}
func (a *AdvisoryLock) WithLock(ctx context.Context, timeoutSeconds int, fn func() error) error {
	acquired, err := a.AcquireLock(ctx, timeoutSeconds)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return fmt.Errorf("%w: lock %q is held by another instance", ErrLockTimeout, a.lockName)
	}

	defer func() {
		// Released on a fresh context so a canceled ctx still cleans up.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// The server drops the lock with the session if this fails.
		_, _ = a.ReleaseLock(releaseCtx)
	}()

	return fn()
}
