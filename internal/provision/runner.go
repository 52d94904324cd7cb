package provision

import (
	"context"
	"time"

	"github.com/suhani2210/agentsetup/internal/python"
	"github.com/suhani2210/agentsetup/internal/scaffold"
)

// Report summarizes a plan execution for the CLI and the completion banner.
type Report struct {
	Steps       []StepResult
	Interpreter python.Interpreter
	Venv        python.Venv
	EnvOutcome  scaffold.EnvOutcome

	// Completed is true when the runner reached the end of the plan, even if
	// best-effort steps failed along the way. The completion banner is shown
	// only for completed runs; an aborting installer failure withholds it.
	Completed bool
}

// Failures returns the results of steps that failed.
func (r Report) Failures() []StepResult {
	var out []StepResult

	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			out = append(out, s)
		}
	}

	return out
}

// Execute runs the plan's steps in order, honoring per-step policy.
func (p *Plan) Execute(ctx context.Context) Report {
	report := Report{Completed: true}

	aborted := false

	for _, step := range p.steps {
		if aborted || step.Skip {
			p.log.Info().Str("step", step.Name).Msg("skipped")
			report.Steps = append(report.Steps, StepResult{Name: step.Name, Status: StatusSkipped})

			continue
		}

		p.log.Info().Str("step", step.Name).Msg("running")

		start := time.Now()
		err := step.Run(ctx)
		elapsed := time.Since(start)

		if err == nil {
			report.Steps = append(report.Steps, StepResult{Name: step.Name, Status: StatusOK, Duration: elapsed})

			continue
		}

		report.Steps = append(report.Steps, StepResult{
			Name:     step.Name,
			Status:   StatusFailed,
			Err:      err,
			Duration: elapsed,
		})

		if step.Policy == Abort {
			p.log.Error().Err(err).Str("step", step.Name).Msg("step failed, aborting remaining steps")

			aborted = true
			report.Completed = false

			continue
		}

		p.log.Warn().Err(err).Str("step", step.Name).Msg("step failed, continuing")
	}

	report.Interpreter = p.interp
	report.Venv = p.venv
	report.EnvOutcome = p.envOutcome

	return report
}
