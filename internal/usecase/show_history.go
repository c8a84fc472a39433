package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/rebase-sync/internal/domain"
	"github.com/compozy/rebase-sync/internal/repository"
)

// ShowHistoryUseCase loads journaled runs.

type ShowHistoryUseCase struct {
	Journal repository.JournalRepository
}

// Execute returns the run with sessionID, or the latest run when it is empty.
func (uc *ShowHistoryUseCase) Execute(ctx context.Context, sessionID string) (*domain.RunRecord, error) {
	if sessionID == "" {
		record, err := uc.Journal.LoadLatest(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load latest run: %w", err)
		}
		return record, nil
	}
	record, err := uc.Journal.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", sessionID, err)
	}
	return record, nil
}
