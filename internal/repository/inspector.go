package repository

import (
	"context"
	"fmt"

	"github.com/compozy/rebase-sync/internal/domain"
	"go.uber.org/zap"
)

// Inspector gathers read-only facts about the working copy.
type Inspector struct {
	runner CommandRunner
	log    *zap.Logger
}

// NewInspector creates an inspector that queries through runner.
func NewInspector(runner CommandRunner, log *zap.Logger) *Inspector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Inspector{runner: runner, log: log.Named("inspector")}
}

// query runs a read-only command and treats a non-zero exit as a failure.
func (i *Inspector) query(ctx context.Context, args ...string) (string, error) {
	result, err := i.runner.Run(ctx, args...)
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", NewCommandError(result)
	}
	i.log.Debug("query finished", zap.Strings("args", args), zap.Int("bytes", len(result.Stdout)))
	return string(result.Stdout), nil
}

// GetCurrentBranch returns the branch named in `git status`.
func (i *Inspector) GetCurrentBranch(ctx context.Context) (string, error) {
	out, err := i.query(ctx, "status")
	if err != nil {
		return "", err
	}
	return ParseCurrentBranch(out)
}

// GetLocalBranches returns the names listed by `git branch`.
func (i *Inspector) GetLocalBranches(ctx context.Context) (domain.NameSet, error) {
	out, err := i.query(ctx, "branch")
	if err != nil {
		return nil, err
	}
	return ParseBranchList(out), nil
}

// GetRemoteNames returns the names listed by `git remote`.
func (i *Inspector) GetRemoteNames(ctx context.Context) (domain.NameSet, error) {
	out, err := i.query(ctx, "remote")
	if err != nil {
		return nil, err
	}
	return ParseRemoteList(out), nil
}

// GetGitVersion returns the version of the git binary the runner uses.
func (i *Inspector) GetGitVersion(ctx context.Context) (*domain.GitVersion, error) {
	out, err := i.query(ctx, "version")
	if err != nil {
		return nil, err
	}
	return ParseGitVersion(out)
}

// Gather builds the startup RepositoryState. Any error is a precondition
// failure and no mutating command may follow it.
func (i *Inspector) Gather(ctx context.Context) (domain.RepositoryState, error) {
	current, err := i.GetCurrentBranch(ctx)
	if err != nil {
		return domain.RepositoryState{}, fmt.Errorf("unable to get current branch name: %w", err)
	}
	remotes, err := i.GetRemoteNames(ctx)
	if err != nil {
		return domain.RepositoryState{}, fmt.Errorf("unable to get remote names: %w", err)
	}
	branches, err := i.GetLocalBranches(ctx)
	if err != nil {
		return domain.RepositoryState{}, fmt.Errorf("unable to get local branches: %w", err)
	}
	// git branch lists nothing before the first commit.
	branches[current] = struct{}{}
	i.log.Debug("repository state gathered",
		zap.String("current_branch", current),
		zap.Strings("local_branches", branches.Names()),
		zap.Strings("remotes", remotes.Names()),
	)
	return domain.RepositoryState{
		CurrentBranch: current,
		LocalBranches: branches,
		RemoteNames:   remotes,
	}, nil
}
