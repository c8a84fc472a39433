package usecase

import (
	"context"
	"fmt"
)

// RepositoryReport is the read-only view printed by the inspect command.
type RepositoryReport struct {
	CurrentBranch string   `json:"current_branch"`
	LocalBranches []string `json:"local_branches"`
	Remotes       []string `json:"remotes"`
	GitVersion    string   `json:"git_version,omitempty"`
}

// InspectRepositoryUseCase builds a RepositoryReport without changing anything.

type InspectRepositoryUseCase struct {
	Inspector StateInspector
}

// Execute runs the use case.
func (uc *InspectRepositoryUseCase) Execute(ctx context.Context) (*RepositoryReport, error) {
	state, err := uc.Inspector.Gather(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect repository: %w", err)
	}
	version, err := uc.Inspector.GetGitVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get git version: %w", err)
	}
	return &RepositoryReport{
		CurrentBranch: state.CurrentBranch,
		LocalBranches: state.LocalBranches.Names(),
		Remotes:       state.RemoteNames.Names(),
		GitVersion:    version.String(),
	}, nil
}
