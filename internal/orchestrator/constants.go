package orchestrator

// Default branch and remote names used by the workflow.
const (
	// DefaultPrimaryBranch is the integration branch that gets rebased onto the target remote
	DefaultPrimaryBranch = "master"
	// DefaultUpstreamRemote is the remote fetched first and preferred as rebase target
	DefaultUpstreamRemote = "upstream"
	// DefaultOriginRemote is the remote fetched second
	DefaultOriginRemote = "origin"
)

// Skip reasons recorded for entered phases whose precondition is missing.
const (
	skipAlreadyOnPrimary      = "already on primary branch"
	skipPrimaryMissing        = "primary branch not found locally"
	skipRemoteMissing         = "remote not configured"
	skipStartingBranchMissing = "starting branch not found locally"
)
