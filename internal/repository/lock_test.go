package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingCopyLock(t *testing.T) {
	ctx := context.Background()
	t.Run("Should keep the lock file outside the working copy", func(t *testing.T) {
		root := t.TempDir()
		path := LockPath(root)
		assert.Equal(t, os.TempDir(), filepath.Dir(path))
		assert.Equal(t, path, LockPath(root+string(filepath.Separator)))
		assert.NotEqual(t, path, LockPath(filepath.Join(root, "other")))
	})
	t.Run("Should acquire and release the lock", func(t *testing.T) {
		lock := NewWorkingCopyLock(t.TempDir())
		require.NoError(t, lock.Acquire(ctx, time.Second))
		require.NoError(t, lock.Release())
		require.NoError(t, lock.Acquire(ctx, time.Second))
		require.NoError(t, lock.Release())
		_ = os.Remove(lock.Path())
	})
	t.Run("Should time out while another run holds the lock", func(t *testing.T) {
		root := t.TempDir()
		holder := NewWorkingCopyLock(root)
		require.NoError(t, holder.Acquire(ctx, time.Second))
		t.Cleanup(func() {
			_ = holder.Release()
			_ = os.Remove(holder.Path())
		})
		contender := NewWorkingCopyLock(root)
		start := time.Now()
		err := contender.Acquire(ctx, 300*time.Millisecond)
		assert.ErrorIs(t, err, ErrLocked)
		assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
	})
}

func TestAcquireWithRetry(t *testing.T) {
	t.Run("Should poll until the lock is free", func(t *testing.T) {
		attempts := 0
		err := acquireWithRetry(context.Background(), time.Second, func() (bool, error) {
			attempts++
			return attempts == 3, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})
	t.Run("Should stop on a hard error", func(t *testing.T) {
		attempts := 0
		err := acquireWithRetry(context.Background(), time.Second, func() (bool, error) {
			attempts++
			return false, os.ErrPermission
		})
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.Equal(t, 1, attempts)
	})
}
