package python

import (
	"context"
	"fmt"
	"time"

	"github.com/suhani2210/agentsetup/internal/run"
)

// RetryPolicy tunes the network-bound pip invocations.
// Attempts includes the initial try; 1 disables retrying.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

func (p RetryPolicy) normalize() RetryPolicy {
	if p.Attempts < 1 {
		p.Attempts = 1
	}

	return p
}

// UpgradePip updates the environment's installer to the latest version.
// Network-dependent; the caller decides whether a failure aborts the run.
func (t *Toolchain) UpgradePip(ctx context.Context, v Venv, policy RetryPolicy) error {
	policy = policy.normalize()

	cmd := run.Cmd(v.Python()).Args("-m", "pip", "install", "--upgrade", "pip").Build()

	res, err := t.exec.RunBuffered(ctx, cmd, run.WithRetry(policy.Attempts, policy.Delay))
	if err != nil {
		return fmt.Errorf("upgrade pip: %w%s", err, stderrTail(res))
	}

	t.log.Info().Msg("pip upgraded")

	return nil
}

// InstallRequirements installs the packages listed in the manifest into the
// environment, streaming installer output to the log at debug level.
//
// The streaming path bypasses the executor's retry option, so the attempt
// loop lives here.
func (t *Toolchain) InstallRequirements(ctx context.Context, v Venv, manifest string, policy RetryPolicy) error {
	policy = policy.normalize()

	var lastErr error

	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		if attempt > 1 {
			t.log.Warn().Int("attempt", attempt).Msg("retrying dependency install")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(policy.Delay):
			}
		}

		cmd := run.Cmd(v.Python()).Args("-m", "pip", "install", "-r", manifest).Build()

		lastErr = t.exec.RunLineStream(ctx, cmd, func(line string) {
			t.log.Debug().Str("pip", line).Msg("")
		})
		if lastErr == nil {
			t.log.Info().Str("manifest", manifest).Msg("dependencies installed")

			return nil
		}
	}

	return fmt.Errorf("install dependencies from %s: %w", manifest, lastErr)
}
