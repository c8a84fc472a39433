package usecase

import (
	"errors"

	"github.com/compozy/rebase-sync/internal/domain"
)

// ErrNoRebaseTarget is returned when no remote was requested and none exists.
var ErrNoRebaseTarget = errors.New("no rebase target: the repository has no remotes")

// SelectRemoteUseCase picks the remote whose primary branch is rebased onto.

type SelectRemoteUseCase struct {
	UpstreamRemote string
}

// Execute returns requested when set. Otherwise it prefers the upstream
// remote and falls back to the first remote by name. A requested remote is
// not checked against the snapshot.
func (uc *SelectRemoteUseCase) Execute(state domain.RepositoryState, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	if state.RemoteNames.Has(uc.UpstreamRemote) {
		return uc.UpstreamRemote, nil
	}
	names := state.RemoteNames.Names()
	if len(names) == 0 {
		return "", ErrNoRebaseTarget
	}
	return names[0], nil
}
