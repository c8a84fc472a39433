package orchestrator

import (
	"context"
	"sync"

	"github.com/compozy/rebase-sync/internal/domain"
	"github.com/compozy/rebase-sync/internal/repository"
	"github.com/stretchr/testify/mock"
)

// Mock for CommandRunner. Arguments are flattened so expectations read like
// the git command line: On("Run", mock.Anything, "fetch", "--prune", "origin").
type mockCommandRunner struct{ mock.Mock }

func (m *mockCommandRunner) Run(ctx context.Context, args ...string) (repository.CommandResult, error) {
	callArgs := []any{ctx}
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	result := m.Called(callArgs...)
	res, _ := result.Get(0).(repository.CommandResult)
	return res, result.Error(1)
}

// expect registers a git command that exits with exitCode.
func (m *mockCommandRunner) expect(exitCode int, args ...string) *mock.Call {
	callArgs := []any{mock.Anything}
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	return m.On("Run", callArgs...).Return(repository.CommandResult{Args: args, ExitCode: exitCode}, nil)
}

// commands returns the git command lines that were executed, in order.
func (m *mockCommandRunner) commands() [][]string {
	var cmds [][]string
	for _, call := range m.Calls {
		if call.Method != "Run" {
			continue
		}
		var args []string
		for _, a := range call.Arguments[1:] {
			args = append(args, a.(string))
		}
		cmds = append(cmds, args)
	}
	return cmds
}

// Mock for JournalRepository
type mockJournalRepository struct{ mock.Mock }

func (m *mockJournalRepository) Save(ctx context.Context, record *domain.RunRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockJournalRepository) Load(ctx context.Context, sessionID string) (*domain.RunRecord, error) {
	args := m.Called(ctx, sessionID)
	if record := args.Get(0); record != nil {
		return record.(*domain.RunRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJournalRepository) LoadLatest(ctx context.Context) (*domain.RunRecord, error) {
	args := m.Called(ctx)
	if record := args.Get(0); record != nil {
		return record.(*domain.RunRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJournalRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *mockJournalRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

// recordingReporter collects every label it is notified with.
type recordingReporter struct {
	mu     sync.Mutex
	labels []string
}

func (r *recordingReporter) Notify(phaseLabel string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels = append(r.labels, phaseLabel)
}

func (r *recordingReporter) Labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.labels...)
}
