package domain

import "sort"

// NameSet is a set of branch or remote names.
type NameSet map[string]struct{}

// NewNameSet builds a set from the given names, ignoring empty strings.
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Has reports whether name is a member of the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the members in sorted order.
func (s NameSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RepositoryState is the snapshot gathered from the working copy at startup.
// It is not updated when the workflow later switches branches.
type RepositoryState struct {
	CurrentBranch string  `json:"current_branch"`
	LocalBranches NameSet `json:"-"`
	RemoteNames   NameSet `json:"-"`
}

// RebaseOptions are the three choices collected before a run.
type RebaseOptions struct {
	TargetRemote           string `json:"target_remote"`
	RebaseCurrentBranchToo bool   `json:"rebase_current_branch_too"`
	PushAfterRebase        bool   `json:"push_after_rebase"`
}

// Normalize returns the options as they apply to the given starting branch.
// On the primary branch there is nothing separate to rebase, so the
// current-branch rebase is reported as enabled.
func (o RebaseOptions) Normalize(startingBranch, primaryBranch string) RebaseOptions {
	if startingBranch == primaryBranch {
		o.RebaseCurrentBranchToo = true
	}
	return o
}
