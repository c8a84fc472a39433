package domain

import (
	"time"
)

// RunStatus represents the overall status of a rebase run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RunRecord is the journal entry for a single rebase run
type RunRecord struct {
	SessionID      string        `json:"session_id"`
	StartedAt      time.Time     `json:"started_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	WorkingCopy    string        `json:"working_copy"`
	StartingBranch string        `json:"starting_branch"`
	Options        RebaseOptions `json:"options"`
	Steps          []StepResult  `json:"steps"`
	Status         RunStatus     `json:"status"`
	FailedPhase    Phase         `json:"failed_phase,omitempty"`
	Error          string        `json:"error,omitempty"`
}

// NewRunRecord creates a new run record
func NewRunRecord(sessionID, workingCopy string, state RepositoryState, opts RebaseOptions) *RunRecord {
	now := time.Now()
	return &RunRecord{
		SessionID:      sessionID,
		StartedAt:      now,
		UpdatedAt:      now,
		WorkingCopy:    workingCopy,
		StartingBranch: state.CurrentBranch,
		Options:        opts,
		Steps:          []StepResult{},
		Status:         RunStatusPending,
	}
}

// MarkRunning marks the run as started
func (r *RunRecord) MarkRunning() {
	r.Status = RunStatusRunning
	r.UpdatedAt = time.Now()
}

// AddStep appends the result of an entered phase
func (r *RunRecord) AddStep(step StepResult) {
	r.Steps = append(r.Steps, step)
	r.UpdatedAt = time.Now()
}

// MarkCompleted marks the run as finished without a halting failure
func (r *RunRecord) MarkCompleted() {
	r.Status = RunStatusCompleted
	r.UpdatedAt = time.Now()
}

// MarkFailed records the halting failure
func (r *RunRecord) MarkFailed(failure *WorkflowFailure) {
	r.Status = RunStatusFailed
	r.FailedPhase = failure.Phase
	if failure.Cause != nil {
		r.Error = failure.Cause.Error()
	}
	r.UpdatedAt = time.Now()
}
