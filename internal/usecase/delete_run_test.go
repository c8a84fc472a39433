package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/compozy/rebase-sync/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteRunUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	t.Run("Should delete an existing run", func(t *testing.T) {
		journal := new(mockJournalRepository)
		journal.On("Exists", ctx, "abc").Return(true, nil)
		journal.On("Delete", ctx, "abc").Return(nil)
		err := (&DeleteRunUseCase{Journal: journal}).Execute(ctx, "abc")
		require.NoError(t, err)
		journal.AssertExpectations(t)
	})
	t.Run("Should report an unknown run without deleting", func(t *testing.T) {
		journal := new(mockJournalRepository)
		journal.On("Exists", ctx, "missing").Return(false, nil)
		err := (&DeleteRunUseCase{Journal: journal}).Execute(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrRunNotFound)
		journal.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
	t.Run("Should wrap delete errors", func(t *testing.T) {
		journal := new(mockJournalRepository)
		journal.On("Exists", ctx, "abc").Return(true, nil)
		journal.On("Delete", ctx, "abc").Return(errors.New("permission denied"))
		err := (&DeleteRunUseCase{Journal: journal}).Execute(ctx, "abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete run abc")
	})
	t.Run("Should wrap lookup errors", func(t *testing.T) {
		journal := new(mockJournalRepository)
		journal.On("Exists", ctx, "abc").Return(false, errors.New("stat failed"))
		err := (&DeleteRunUseCase{Journal: journal}).Execute(ctx, "abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check run abc")
		journal.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
