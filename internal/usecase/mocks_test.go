package usecase

import (
	"context"

	"github.com/compozy/rebase-sync/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for StateInspector
type mockStateInspector struct {
	mock.Mock
}

func (m *mockStateInspector) Gather(ctx context.Context) (domain.RepositoryState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RepositoryState), args.Error(1)
}

func (m *mockStateInspector) GetGitVersion(ctx context.Context) (*domain.GitVersion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GitVersion), args.Error(1)
}

// Mock for WorkflowRunner
type mockWorkflowRunner struct {
	mock.Mock
}

func (m *mockWorkflowRunner) Execute(
	ctx context.Context,
	state domain.RepositoryState,
	opts domain.RebaseOptions,
) domain.WorkflowOutcome {
	args := m.Called(ctx, state, opts)
	return args.Get(0).(domain.WorkflowOutcome)
}

// Mock for JournalRepository
type mockJournalRepository struct {
	mock.Mock
}

func (m *mockJournalRepository) Save(ctx context.Context, record *domain.RunRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockJournalRepository) Load(ctx context.Context, sessionID string) (*domain.RunRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RunRecord), args.Error(1)
}

func (m *mockJournalRepository) LoadLatest(ctx context.Context) (*domain.RunRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RunRecord), args.Error(1)
}

func (m *mockJournalRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *mockJournalRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func mustGitVersion(s string) *domain.GitVersion {
	v, err := domain.NewGitVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}
