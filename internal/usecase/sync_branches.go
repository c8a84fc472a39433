package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/rebase-sync/internal/domain"
	"go.uber.org/zap"
)

// StateInspector gathers the read-only snapshot a run starts from.
type StateInspector interface {
	Gather(ctx context.Context) (domain.RepositoryState, error)
	GetGitVersion(ctx context.Context) (*domain.GitVersion, error)
}

// WorkflowRunner runs the rebase workflow once.
type WorkflowRunner interface {
	Execute(ctx context.Context, state domain.RepositoryState, opts domain.RebaseOptions) domain.WorkflowOutcome
}

// SyncRequest carries the user's choices for one run.
type SyncRequest struct {
	Remote        string
	RebaseCurrent bool
	Push          bool
}

// SyncBranchesUseCase inspects the working copy and runs the rebase workflow.

type SyncBranchesUseCase struct {
	Inspector    StateInspector
	Orchestrator WorkflowRunner
	SelectRemote *SelectRemoteUseCase
	Log          *zap.Logger
}

// Execute returns the workflow outcome together with its error. Inspection
// failures return before any mutating command runs.
func (uc *SyncBranchesUseCase) Execute(ctx context.Context, req SyncRequest) (domain.WorkflowOutcome, error) {
	log := uc.Log
	if log == nil {
		log = zap.NewNop()
	}
	state, err := uc.Inspector.Gather(ctx)
	if err != nil {
		return domain.WorkflowOutcome{}, fmt.Errorf("failed to inspect repository: %w", err)
	}
	uc.checkGitVersion(ctx, log)
	remote, err := uc.SelectRemote.Execute(state, req.Remote)
	if err != nil {
		return domain.WorkflowOutcome{}, err
	}
	outcome := uc.Orchestrator.Execute(ctx, state, domain.RebaseOptions{
		TargetRemote:           remote,
		RebaseCurrentBranchToo: req.RebaseCurrent,
		PushAfterRebase:        req.Push,
	})
	return outcome, outcome.Err()
}

// checkGitVersion only warns: an old or unreadable version is not fatal.
func (uc *SyncBranchesUseCase) checkGitVersion(ctx context.Context, log *zap.Logger) {
	version, err := uc.Inspector.GetGitVersion(ctx)
	if err != nil {
		log.Warn("unable to determine git version", zap.Error(err))
		return
	}
	if !version.Supported() {
		log.Warn("git version is older than supported",
			zap.String("version", version.String()),
			zap.String("minimum", domain.MinimumGitVersion),
		)
	}
}
