package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/sethvargo/go-retry"
)

const (
	// DefaultLockTimeout defines the maximum time to wait for a lock
	DefaultLockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// ErrLocked is returned when another run holds the working copy lock.
var ErrLocked = errors.New("working copy is locked by another run")

var errLockBusy = errors.New("lock busy")

// WorkingCopyLock serializes runs against one working copy. The lock file is
// kept outside the working copy so it never shows up in `git status`.
type WorkingCopyLock struct {
	lock *flock.Flock
}

// NewWorkingCopyLock creates the lock for the working copy rooted at root.
func NewWorkingCopyLock(root string) *WorkingCopyLock {
	return &WorkingCopyLock{lock: flock.New(LockPath(root))}
}

// LockPath returns the lock file used for the working copy rooted at root.
func LockPath(root string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Join(os.TempDir(), fmt.Sprintf("rebase-sync-%s.lock", hex.EncodeToString(sum[:8])))
}

// Path returns the lock file path.
func (l *WorkingCopyLock) Path() string {
	return l.lock.Path()
}

// Acquire takes the exclusive lock, polling until timeout elapses.
func (l *WorkingCopyLock) Acquire(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	if err := acquireWithRetry(ctx, timeout, l.lock.TryLock); err != nil {
		if errors.Is(err, errLockBusy) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w (lock file %s)", ErrLocked, l.lock.Path())
		}
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	return nil
}

// Release drops the lock.
func (l *WorkingCopyLock) Release() error {
	return l.lock.Unlock()
}

// acquireWithRetry polls try at LockRetryInterval until it succeeds, fails,
// or timeout elapses.
func acquireWithRetry(ctx context.Context, timeout time.Duration, try func() (bool, error)) error {
	backoff := retry.WithMaxDuration(timeout, retry.NewConstant(LockRetryInterval))
	return retry.Do(ctx, backoff, func(_ context.Context) error {
		locked, err := try()
		if err != nil {
			return err
		}
		if !locked {
			return retry.RetryableError(errLockBusy)
		}
		return nil
	})
}
