package domain

// Phase identifies a state of the rebase workflow.
type Phase string

const (
	PhaseInit                            Phase = "init"
	PhaseEnsureOnPrimaryBranch           Phase = "ensure_on_primary_branch"
	PhaseFetchUpstreamRemote             Phase = "fetch_upstream_remote"
	PhaseFetchOriginRemote               Phase = "fetch_origin_remote"
	PhaseRebaseOntoUpstream              Phase = "rebase_onto_upstream"
	PhasePushPrimaryBranch               Phase = "push_primary_branch"
	PhaseReturnToStartingBranch          Phase = "return_to_starting_branch"
	PhaseRebaseStartingBranchOntoPrimary Phase = "rebase_starting_branch_onto_primary"
	PhaseDone                            Phase = "done"
	PhaseFailed                          Phase = "failed"
)

var phaseLabels = map[Phase]string{
	PhaseInit:                            "Gathering repository information",
	PhaseEnsureOnPrimaryBranch:           "Checking out primary branch",
	PhaseFetchUpstreamRemote:             "Updating from upstream remote",
	PhaseFetchOriginRemote:               "Updating from origin remote",
	PhaseRebaseOntoUpstream:              "Rebasing primary branch",
	PhasePushPrimaryBranch:               "Pushing primary branch",
	PhaseReturnToStartingBranch:          "Returning to starting branch",
	PhaseRebaseStartingBranchOntoPrimary: "Rebasing starting branch onto primary branch",
	PhaseDone:                            "Complete",
	PhaseFailed:                          "Failed",
}

// Label returns the human readable status text for the phase.
func (p Phase) Label() string {
	if label, ok := phaseLabels[p]; ok {
		return label
	}
	return string(p)
}

// IsTerminal reports whether no further phase can follow.
func (p Phase) IsTerminal() bool {
	return p == PhaseDone || p == PhaseFailed
}
