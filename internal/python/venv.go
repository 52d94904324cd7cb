package python

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/suhani2210/agentsetup/internal/run"
)

// Venv describes an isolated environment rooted at Dir on the given OS.
//
// The POSIX/Windows split is the one platform branch in the whole procedure:
// POSIX venvs keep binaries under bin/, Windows under Scripts\ with .exe
// suffixes, and the activation entry point differs accordingly.
type Venv struct {
	Dir string
	OS  run.TargetOS
}

// Python returns the path of the environment's own interpreter.
func (v Venv) Python() string {
	if v.OS == run.OSWindows {
		return v.Dir + `\Scripts\python.exe`
	}

	return filepath.Join(v.Dir, "bin", "python")
}

// Pip returns the path of the environment's own installer.
func (v Venv) Pip() string {
	if v.OS == run.OSWindows {
		return v.Dir + `\Scripts\pip.exe`
	}

	return filepath.Join(v.Dir, "bin", "pip")
}

// ActivateHint returns the shell line an operator runs to activate the
// environment in their own session.
func (v Venv) ActivateHint() string {
	if v.OS == run.OSWindows {
		return v.Dir + `\Scripts\activate`
	}

	return "source " + filepath.Join(v.Dir, "bin", "activate")
}

// CreateVenv creates (or repairs, per the venv module's own semantics) an
// isolated environment at dir using the given interpreter.
func (t *Toolchain) CreateVenv(ctx context.Context, interp Interpreter, dir string) (Venv, error) {
	v := Venv{Dir: dir, OS: t.exec.TargetOS()}

	res, err := t.exec.RunBuffered(ctx, run.Cmd(interp.Path).Args("-m", "venv", dir).Build())
	if err != nil {
		return v, fmt.Errorf("create venv at %s: %w%s", dir, err, stderrTail(res))
	}

	t.log.Info().Str("dir", dir).Msg("virtual environment ready")

	return v, nil
}

// stderrTail formats captured stderr for error context, or nothing when empty.
func stderrTail(res *run.BufferedResult) string {
	if res == nil || len(res.Stderr) == 0 {
		return ""
	}

	return ": " + string(res.Stderr)
}
