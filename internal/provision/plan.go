package provision

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/suhani2210/agentsetup/internal/config"
	"github.com/suhani2210/agentsetup/internal/python"
	"github.com/suhani2210/agentsetup/internal/run"
	"github.com/suhani2210/agentsetup/internal/scaffold"
)

// Options tune plan construction.
type Options struct {
	// SkipInstall marks the installer steps as skipped for offline re-runs;
	// the filesystem-only steps still execute.
	SkipInstall bool
}

// Plan is the ordered provisioning sequence for one invocation root.
type Plan struct {
	root  string
	cfg   config.Config
	tc    *python.Toolchain
	exec  *run.Executor
	log   zerolog.Logger
	steps []Step

	// State threaded between steps.
	interp     python.Interpreter
	venv       python.Venv
	envOutcome scaffold.EnvOutcome
}

// NewPlan builds the ordered step sequence against the given environment.
// The completion summary is rendered by the caller from the run's Report.
func NewPlan(root string, cfg config.Config, env run.Environment, log zerolog.Logger, opts Options) *Plan {
	p := &Plan{
		root: root,
		cfg:  cfg,
		tc:   python.NewToolchain(env, log),
		exec: run.NewExecutor(env),
		log:  log,
	}

	// The venv layout is fixed up front: target OS and directory don't depend
	// on earlier steps, and later steps and the final report all need it.
	p.venv = python.Venv{
		Dir: filepath.Join(root, cfg.Python.VenvDir),
		OS:  p.tc.TargetOS(),
	}

	retry := python.RetryPolicy{
		Attempts: cfg.Install.NetworkRetries,
		Delay:    time.Duration(cfg.Install.RetryDelayMS) * time.Millisecond,
	}

	installerPolicy := Abort
	if cfg.Install.ContinueOnError {
		installerPolicy = BestEffort
	}

	p.steps = []Step{
		{
			Name:   "detect python interpreter",
			Policy: BestEffort,
			Run: func(ctx context.Context) error {
				interp, err := p.tc.FindInterpreter(ctx, cfg.Python.Candidates)
				if err != nil {
					return err
				}

				p.interp = interp
				log.Info().Str("python", interp.Path).Str("version", interp.Version).Msg("interpreter detected")

				return nil
			},
		},
		{
			Name:   "create virtual environment",
			Policy: BestEffort,
			Run: func(ctx context.Context) error {
				v, err := p.tc.CreateVenv(ctx, p.interp, p.venv.Dir)
				if err != nil {
					return err
				}

				p.venv = v

				return nil
			},
		},
		{
			Name:   "resolve activation entry point",
			Policy: BestEffort,
			Run: func(context.Context) error {
				// A child process can't mutate its parent shell; the installer
				// steps get the same effect by invoking the venv's own
				// binaries, and the operator gets the platform-correct line.
				log.Info().Str("activate", p.venv.ActivateHint()).Msg("activation entry point")

				return nil
			},
		},
		{
			Name:   "upgrade pip",
			Policy: installerPolicy,
			Skip:   opts.SkipInstall,
			Run: func(ctx context.Context) error {
				return p.tc.UpgradePip(ctx, p.venv, retry)
			},
		},
		{
			Name:   "install dependencies",
			Policy: installerPolicy,
			Skip:   opts.SkipInstall,
			Run: func(ctx context.Context) error {
				return p.tc.InstallRequirements(ctx, p.venv, filepath.Join(root, cfg.Install.Requirements), retry)
			},
		},
		{
			Name:   "create package markers",
			Policy: BestEffort,
			Run: func(context.Context) error {
				entries, err := scaffold.EnsureMarkers(root, cfg.Layout.Markers)
				logEntries(log, "marker", entries)

				return err
			},
		},
		{
			Name:   "materialize environment file",
			Policy: BestEffort,
			Run: func(context.Context) error {
				outcome, err := scaffold.MaterializeEnv(root, cfg.Layout.EnvFile, cfg.Layout.EnvTemplate)
				if err != nil {
					return err
				}

				p.envOutcome = outcome

				switch outcome {
				case scaffold.EnvCreated:
					log.Warn().Str("file", cfg.Layout.EnvFile).Msg("created from template; add your API keys before running the app")
				case scaffold.EnvExists:
					log.Info().Str("file", cfg.Layout.EnvFile).Msg("already present, left untouched")
				case scaffold.EnvTemplateMissing:
					log.Warn().Str("file", cfg.Layout.EnvFile).Str("template", cfg.Layout.EnvTemplate).Msg("no template found, skipping")
				}

				return nil
			},
		},
		{
			Name:   "create working directories",
			Policy: BestEffort,
			Run: func(context.Context) error {
				entries, err := scaffold.EnsureDirs(root, cfg.Layout.Dirs)
				logEntries(log, "dir", entries)

				return err
			},
		},
		{
			Name:   "run post-install commands",
			Policy: BestEffort,
			Skip:   opts.SkipInstall,
			Run: func(ctx context.Context) error {
				return p.runPostInstall(ctx)
			},
		},
	}

	return p
}

// StepNames returns the plan's step names in execution order (dry-run output).
func (p *Plan) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}

	return names
}

// runPostInstall executes the configured extra command lines from the
// invocation root, streaming their output to the log. The step is a no-op
// when no commands are configured.
func (p *Plan) runPostInstall(ctx context.Context) error {
	for _, line := range p.cfg.Install.PostInstall {
		cmd, err := run.ParseCommand(line)
		if err != nil {
			return fmt.Errorf("post-install %q: %w", line, err)
		}

		cmd.Dir = p.root
		p.log.Info().Str("cmd", cmd.String()).Msg("running post-install command")

		err = p.exec.RunLineStream(ctx, cmd, func(out string) {
			p.log.Debug().Str("out", out).Msg("")
		})
		if err != nil {
			return fmt.Errorf("post-install %q: %w", line, err)
		}
	}

	return nil
}

func logEntries(log zerolog.Logger, kind string, entries []scaffold.Entry) {
	for _, e := range entries {
		if e.Created {
			log.Info().Str(kind, e.Path).Msg("created")
		} else {
			log.Debug().Str(kind, e.Path).Msg("already present")
		}
	}
}
