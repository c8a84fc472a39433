package orchestrator

import (
	"context"
	"strings"

	"github.com/compozy/rebase-sync/internal/domain"
	"github.com/compozy/rebase-sync/internal/repository"
	"go.uber.org/zap"
)

// WorkflowStep is a single phase of the rebase workflow
type WorkflowStep struct {
	Phase domain.Phase
	// Enabled is false for optional phases that are not part of this run.
	Enabled bool
	// Args is the git command the phase runs.
	Args []string
	// SkipReason, when set, makes the entered phase a silent no-op.
	SkipReason string
}

// StepExecutor runs workflow steps strictly in order and stops at the first
// command that exits non-zero. Commands are never retried and nothing is
// rolled back: a halted rebase is left for the user to resolve.
type StepExecutor struct {
	runner   repository.CommandRunner
	reporter StatusReporter
	journal  repository.JournalRepository
	record   *domain.RunRecord
	log      *zap.Logger
	steps    []WorkflowStep
}

// NewStepExecutor creates a new step executor
func NewStepExecutor(
	runner repository.CommandRunner,
	reporter StatusReporter,
	journal repository.JournalRepository,
	record *domain.RunRecord,
	log *zap.Logger,
) *StepExecutor {
	if reporter == nil {
		reporter = NewNoopReporter()
	}
	if journal == nil {
		journal = repository.NewNoopJournalRepository()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &StepExecutor{
		runner:   runner,
		reporter: reporter,
		journal:  journal,
		record:   record,
		log:      log,
		steps:    []WorkflowStep{},
	}
}

// AddStep adds a step to the workflow
func (s *StepExecutor) AddStep(step WorkflowStep) {
	s.steps = append(s.steps, step)
}

// Execute runs the steps and returns the single outcome of the run
func (s *StepExecutor) Execute(ctx context.Context) domain.WorkflowOutcome {
	s.notify(domain.PhaseInit)
	s.record.MarkRunning()
	s.saveRecord(ctx)
	var outcome domain.WorkflowOutcome
	for _, step := range s.steps {
		if !step.Enabled {
			continue
		}
		result, failure := s.executeStep(ctx, step)
		outcome.Steps = append(outcome.Steps, result)
		s.record.AddStep(result)
		if failure != nil {
			outcome.Failure = failure
			s.record.MarkFailed(failure)
			s.saveRecord(ctx)
			s.notify(domain.PhaseFailed)
			s.log.Error("workflow halted",
				zap.String("phase", string(failure.Phase)),
				zap.Error(failure.Cause),
			)
			return outcome
		}
		s.saveRecord(ctx)
	}
	s.notify(domain.PhaseDone)
	done := domain.StepResult{Phase: domain.PhaseDone, Status: domain.StepStatusCompleted}
	outcome.Steps = append(outcome.Steps, done)
	s.record.AddStep(done)
	s.record.MarkCompleted()
	s.saveRecord(ctx)
	return outcome
}

// executeStep enters one phase and runs its command unless it is skipped
func (s *StepExecutor) executeStep(ctx context.Context, step WorkflowStep) (domain.StepResult, *domain.WorkflowFailure) {
	s.notify(step.Phase)
	result := domain.StepResult{Phase: step.Phase}
	if step.SkipReason != "" {
		result.Status = domain.StepStatusSkipped
		result.SkipReason = step.SkipReason
		s.log.Debug("phase skipped",
			zap.String("phase", string(step.Phase)),
			zap.String("reason", step.SkipReason),
		)
		return result, nil
	}
	result.Args = step.Args
	s.log.Info("running git", zap.String("phase", string(step.Phase)), zap.String("command", strings.Join(step.Args, " ")))
	cmdResult, err := s.runner.Run(ctx, step.Args...)
	if err != nil {
		result.Status = domain.StepStatusFailed
		result.ExitCode = -1
		result.Error = err.Error()
		return result, &domain.WorkflowFailure{Phase: step.Phase, Cause: err}
	}
	if cmdResult.Args == nil {
		cmdResult.Args = step.Args
	}
	result.ExitCode = cmdResult.ExitCode
	result.Output = cmdResult.Output()
	if !cmdResult.Success() {
		cmdErr := repository.NewCommandError(cmdResult)
		result.Status = domain.StepStatusFailed
		result.Error = cmdErr.Error()
		return result, &domain.WorkflowFailure{Phase: step.Phase, Cause: cmdErr}
	}
	result.Status = domain.StepStatusCompleted
	return result, nil
}

// notify hands the phase label to the reporter. A misbehaving reporter is
// logged and otherwise ignored.
func (s *StepExecutor) notify(phase domain.Phase) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("status reporter panicked", zap.String("phase", string(phase)), zap.Any("panic", r))
		}
	}()
	s.reporter.Notify(phase.Label())
}

// saveRecord persists the run record on a best-effort basis
func (s *StepExecutor) saveRecord(ctx context.Context) {
	if err := s.journal.Save(ctx, s.record); err != nil {
		s.log.Warn("failed to save run journal", zap.String("session_id", s.record.SessionID), zap.Error(err))
	}
}
