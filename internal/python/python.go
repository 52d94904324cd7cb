// Package python wraps the external Python toolchain: interpreter discovery,
// virtual environment creation and pip invocations.
//
// Nothing here touches os/exec directly. Every invocation goes through a
// run.Environment so the whole layer can be driven by runmock in tests.
package python

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/suhani2210/agentsetup/internal/run"
)

// ErrInterpreterNotFound indicates that no interpreter candidate resolved on
// the search path.
var ErrInterpreterNotFound = errors.New("no python interpreter found on PATH")

// Interpreter describes a resolved Python binary.
type Interpreter struct {
	Path    string // Absolute path reported by the environment's LookPath
	Version string // e.g. "3.11.4"; empty when the version probe failed
}

// Toolchain executes Python tooling against a run.Environment.
type Toolchain struct {
	exec *run.Executor
	log  zerolog.Logger
}

// NewToolchain creates a Toolchain bound to the given environment.
func NewToolchain(env run.Environment, log zerolog.Logger) *Toolchain {
	return &Toolchain{
		exec: run.NewExecutor(env),
		log:  log,
	}
}

// TargetOS reports the operating system the toolchain executes against.
func (t *Toolchain) TargetOS() run.TargetOS {
	return t.exec.TargetOS()
}

// FindInterpreter resolves the first candidate present on the search path and
// probes its version. A resolvable binary with an unparseable version probe is
// still returned: version detection is a report, not a gate.
func (t *Toolchain) FindInterpreter(ctx context.Context, candidates []string) (Interpreter, error) {
	for _, name := range candidates {
		path, err := t.exec.LookPath(ctx, name)
		if err != nil {
			t.log.Debug().Str("candidate", name).Msg("interpreter candidate not on PATH")
			continue
		}

		interp := Interpreter{Path: path}

		res, err := t.exec.RunBuffered(ctx, run.Cmd(path).Arg("--version").Build())
		if err != nil {
			t.log.Warn().Err(err).Str("python", path).Msg("version probe failed")

			return interp, nil
		}

		// Python 2 printed the version banner to stderr; check both streams.
		interp.Version = parseVersion(string(res.Stdout))
		if interp.Version == "" {
			interp.Version = parseVersion(string(res.Stderr))
		}

		return interp, nil
	}

	return Interpreter{}, fmt.Errorf("%w (tried %s)", ErrInterpreterNotFound, strings.Join(candidates, ", "))
}

var versionRe = regexp.MustCompile(`Python (\d+(?:\.\d+)*)`)

// parseVersion extracts the dotted version from a "Python X.Y.Z" banner.
func parseVersion(output string) string {
	m := versionRe.FindStringSubmatch(output)
	if m == nil {
		return ""
	}

	return m[1]
}
