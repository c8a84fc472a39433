package orchestrator

import (
	"context"

	"github.com/compozy/rebase-sync/internal/domain"
	"github.com/compozy/rebase-sync/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RebaseConfig names the branch and remotes the workflow works with.
type RebaseConfig struct {
	PrimaryBranch  string
	UpstreamRemote string
	OriginRemote   string
	// WorkingCopy is recorded in the journal only.
	WorkingCopy string
}

// DefaultRebaseConfig returns the master/upstream/origin layout.
func DefaultRebaseConfig() RebaseConfig {
	return RebaseConfig{
		PrimaryBranch:  DefaultPrimaryBranch,
		UpstreamRemote: DefaultUpstreamRemote,
		OriginRemote:   DefaultOriginRemote,
	}
}

// RebaseOrchestrator sequences checkout, fetch, rebase and push against the
// working copy.
type RebaseOrchestrator struct {
	runner   repository.CommandRunner
	reporter StatusReporter
	journal  repository.JournalRepository
	log      *zap.Logger
	cfg      RebaseConfig
}

// NewRebaseOrchestrator creates a new rebase orchestrator.
func NewRebaseOrchestrator(
	runner repository.CommandRunner,
	reporter StatusReporter,
	journal repository.JournalRepository,
	log *zap.Logger,
	cfg RebaseConfig,
) *RebaseOrchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &RebaseOrchestrator{
		runner:   runner,
		reporter: reporter,
		journal:  journal,
		log:      log.Named("orchestrator"),
		cfg:      cfg,
	}
}

// Execute runs the workflow once for the given snapshot and options.
// The target remote is not checked against the snapshot: an unknown remote
// makes the rebase itself fail.
func (o *RebaseOrchestrator) Execute(
	ctx context.Context,
	state domain.RepositoryState,
	opts domain.RebaseOptions,
) domain.WorkflowOutcome {
	opts = opts.Normalize(state.CurrentBranch, o.cfg.PrimaryBranch)
	sessionID := uuid.New().String()
	log := o.log.With(zap.String("session_id", sessionID))
	log.Info("starting rebase workflow",
		zap.String("starting_branch", state.CurrentBranch),
		zap.String("target_remote", opts.TargetRemote),
		zap.Bool("rebase_current_branch", opts.RebaseCurrentBranchToo),
		zap.Bool("push", opts.PushAfterRebase),
	)
	record := domain.NewRunRecord(sessionID, o.cfg.WorkingCopy, state, opts)
	executor := NewStepExecutor(o.runner, o.reporter, o.journal, record, log)
	for _, step := range o.buildSteps(state, opts) {
		executor.AddStep(step)
	}
	outcome := executor.Execute(ctx)
	if outcome.Succeeded() {
		log.Info("rebase workflow completed")
	}
	return outcome
}

// buildSteps lays out the linear sequence for one run
func (o *RebaseOrchestrator) buildSteps(state domain.RepositoryState, opts domain.RebaseOptions) []WorkflowStep {
	primary := o.cfg.PrimaryBranch
	starting := state.CurrentBranch
	onPrimary := starting == primary
	return []WorkflowStep{
		{
			Phase:      domain.PhaseEnsureOnPrimaryBranch,
			Enabled:    true,
			Args:       []string{"checkout", primary},
			SkipReason: o.ensureSkipReason(state),
		},
		o.fetchStep(domain.PhaseFetchUpstreamRemote, o.cfg.UpstreamRemote, state),
		o.fetchStep(domain.PhaseFetchOriginRemote, o.cfg.OriginRemote, state),
		{
			Phase:   domain.PhaseRebaseOntoUpstream,
			Enabled: true,
			Args:    []string{"rebase", opts.TargetRemote + "/" + primary},
		},
		{
			Phase:   domain.PhasePushPrimaryBranch,
			Enabled: opts.PushAfterRebase,
			Args:    []string{"push"},
		},
		{
			Phase:      domain.PhaseReturnToStartingBranch,
			Enabled:    !onPrimary,
			Args:       []string{"checkout", starting},
			SkipReason: branchSkipReason(state, starting),
		},
		{
			// Without the checkout above this would rebase the primary branch.
			Phase:      domain.PhaseRebaseStartingBranchOntoPrimary,
			Enabled:    !onPrimary && opts.RebaseCurrentBranchToo,
			Args:       []string{"rebase", primary},
			SkipReason: branchSkipReason(state, starting),
		},
	}
}

func (o *RebaseOrchestrator) ensureSkipReason(state domain.RepositoryState) string {
	switch {
	case state.CurrentBranch == o.cfg.PrimaryBranch:
		return skipAlreadyOnPrimary
	case !state.LocalBranches.Has(o.cfg.PrimaryBranch):
		return skipPrimaryMissing
	default:
		return ""
	}
}

func (o *RebaseOrchestrator) fetchStep(phase domain.Phase, remote string, state domain.RepositoryState) WorkflowStep {
	step := WorkflowStep{
		Phase:   phase,
		Enabled: true,
		Args:    []string{"fetch", "--prune", remote},
	}
	if !state.RemoteNames.Has(remote) {
		step.SkipReason = skipRemoteMissing
	}
	return step
}

func branchSkipReason(state domain.RepositoryState, branch string) string {
	if !state.LocalBranches.Has(branch) {
		return skipStartingBranchMissing
	}
	return ""
}
