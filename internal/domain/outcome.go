package domain

import (
	"fmt"
	"strings"
)

// StepStatus records what happened to a phase that was entered.
type StepStatus string

const (
	StepStatusCompleted StepStatus = "completed"
	StepStatusSkipped   StepStatus = "skipped"
	StepStatusFailed    StepStatus = "failed"
)

// StepResult is the record of one entered phase.
type StepResult struct {
	Phase      Phase      `json:"phase"`
	Status     StepStatus `json:"status"`
	Args       []string   `json:"args,omitempty"`
	ExitCode   int        `json:"exit_code"`
	Output     string     `json:"output,omitempty"`
	SkipReason string     `json:"skip_reason,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Ran reports whether a command was executed for the step.
func (r StepResult) Ran() bool {
	return r.Status != StepStatusSkipped && len(r.Args) > 0
}

// WorkflowFailure is a halting failure: the phase it happened in and why.
type WorkflowFailure struct {
	Phase Phase
	Cause error
}

func (f *WorkflowFailure) Error() string {
	return fmt.Sprintf("%s failed: %v", f.Phase, f.Cause)
}

func (f *WorkflowFailure) Unwrap() error {
	return f.Cause
}

// WorkflowOutcome is produced exactly once per workflow execution.
// A nil Failure means success.
type WorkflowOutcome struct {
	Steps   []StepResult
	Failure *WorkflowFailure
}

// Succeeded reports whether the workflow reached Done.
func (o WorkflowOutcome) Succeeded() bool {
	return o.Failure == nil
}

// Err returns the failure as an error, or nil on success.
func (o WorkflowOutcome) Err() error {
	if o.Failure == nil {
		return nil
	}
	return o.Failure
}

// Phases returns the entered phases in order.
func (o WorkflowOutcome) Phases() []Phase {
	phases := make([]Phase, 0, len(o.Steps))
	for _, step := range o.Steps {
		phases = append(phases, step.Phase)
	}
	return phases
}

// Step returns the result recorded for the phase, if it was entered.
func (o WorkflowOutcome) Step(phase Phase) (StepResult, bool) {
	for _, step := range o.Steps {
		if step.Phase == phase {
			return step, true
		}
	}
	return StepResult{}, false
}

// String renders a short one-line summary.
func (o WorkflowOutcome) String() string {
	if o.Failure != nil {
		return "failure in " + string(o.Failure.Phase)
	}
	parts := make([]string, 0, len(o.Steps))
	for _, step := range o.Steps {
		parts = append(parts, string(step.Phase))
	}
	return "success: " + strings.Join(parts, " -> ")
}
