package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/rebase-sync/internal/repository"
)

// DeleteRunUseCase removes a journaled run.

type DeleteRunUseCase struct {
	Journal repository.JournalRepository
}

// Execute deletes the run with sessionID. Unknown sessions are reported as
// repository.ErrRunNotFound.
func (uc *DeleteRunUseCase) Execute(ctx context.Context, sessionID string) error {
	exists, err := uc.Journal.Exists(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to check run %s: %w", sessionID, err)
	}
	if !exists {
		return fmt.Errorf("%w: session %s", repository.ErrRunNotFound, sessionID)
	}
	if err := uc.Journal.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", sessionID, err)
	}
	return nil
}
