// Package provision assembles and executes the ordered setup sequence.
//
// The sequence is deliberately flat: nine steps, one platform branch (venv
// layout) and one existence check (.env). Each step carries a failure policy;
// the two network-bound installer steps abort the remainder, everything else
// is best-effort so a partially broken machine still gets as much scaffolding
// as possible.
package provision

import (
	"context"
	"time"
)

// Policy decides what a step failure does to the rest of the plan.
type Policy int

const (
	// BestEffort logs the failure and moves on.
	BestEffort Policy = iota
	// Abort stops the plan; remaining steps are recorded as skipped.
	Abort
)

// Status is the recorded outcome of one step.
type Status int

const (
	// StatusOK means the step completed.
	StatusOK Status = iota
	// StatusFailed means the step returned an error.
	StatusFailed
	// StatusSkipped means the step never ran (aborted plan or --skip-install).
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Step is one unit of the provisioning sequence.
type Step struct {
	Name   string
	Policy Policy
	Skip   bool // pre-marked as skipped (e.g. --skip-install)
	Run    func(ctx context.Context) error
}

// StepResult records how a step went.
type StepResult struct {
	Name     string
	Status   Status
	Err      error
	Duration time.Duration
}
