// Package doctor runs read-only health checks against a provisioned checkout.
// It never mutates the filesystem; its output tells the operator what setup
// still expects from them (secrets, interpreter, directories).
package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/suhani2210/agentsetup/internal/config"
	"github.com/suhani2210/agentsetup/internal/python"
	"github.com/suhani2210/agentsetup/internal/run"
)

// Severity classifies a failed check.
type Severity int

const (
	// SeverityError means the application will not run until this is fixed.
	SeverityError Severity = iota
	// SeverityWarn means degraded but functional (e.g. optional API key).
	SeverityWarn
)

// Check is one verdict from a doctor run.
type Check struct {
	Name     string
	OK       bool
	Severity Severity
	Detail   string
}

// Run executes all checks and returns their verdicts in a stable order.
func Run(ctx context.Context, root string, cfg config.Config, env run.Environment) []Check {
	var checks []Check

	exec := run.NewExecutor(env)

	// Interpreter on PATH.
	interpOK := false
	detail := "tried " + strings.Join(cfg.Python.Candidates, ", ")

	for _, name := range cfg.Python.Candidates {
		if path, err := exec.LookPath(ctx, name); err == nil {
			interpOK = true
			detail = path

			break
		}
	}

	checks = append(checks, Check{Name: "python interpreter", OK: interpOK, Severity: SeverityError, Detail: detail})

	// Venv binaries.
	venv := python.Venv{Dir: filepath.Join(root, cfg.Python.VenvDir), OS: env.TargetOS()}
	checks = append(checks, statCheck("virtual environment", venv.Python(), SeverityError))

	// Dependency manifest.
	checks = append(checks, statCheck("dependency manifest", filepath.Join(root, cfg.Install.Requirements), SeverityError))

	// Working directories.
	for _, dir := range cfg.Layout.Dirs {
		checks = append(checks, statCheck("directory "+dir, filepath.Join(root, dir), SeverityWarn))
	}

	checks = append(checks, envChecks(root, cfg.Layout.EnvFile)...)

	return checks
}

// RequiredKey must be present in the environment file for the application to
// start; OptionalKey merely unlocks the news-driven features.
const (
	RequiredKey = "OPENAI_API_KEY"
	OptionalKey = "NEWS_API_KEY"
)

func envChecks(root, envFile string) []Check {
	path := filepath.Join(root, envFile)

	vars, err := godotenv.Read(path)
	if err != nil {
		return []Check{{
			Name:     "environment file",
			OK:       false,
			Severity: SeverityError,
			Detail:   fmt.Sprintf("cannot read %s: %v", envFile, err),
		}}
	}

	checks := []Check{{Name: "environment file", OK: true, Detail: path}}

	if vars[RequiredKey] == "" {
		checks = append(checks, Check{
			Name:     RequiredKey,
			OK:       false,
			Severity: SeverityError,
			Detail:   "required by the trading agents, set it in " + envFile,
		})
	} else {
		checks = append(checks, Check{Name: RequiredKey, OK: true, Detail: "set"})
	}

	if vars[OptionalKey] == "" {
		checks = append(checks, Check{
			Name:     OptionalKey,
			OK:       false,
			Severity: SeverityWarn,
			Detail:   "optional, news features stay disabled",
		})
	} else {
		checks = append(checks, Check{Name: OptionalKey, OK: true, Detail: "set"})
	}

	return checks
}

func statCheck(name, path string, severity Severity) Check {
	if _, err := os.Stat(path); err != nil {
		return Check{Name: name, OK: false, Severity: severity, Detail: path + " missing"}
	}

	return Check{Name: name, OK: true, Detail: path}
}

// Healthy reports whether no error-severity check failed.
func Healthy(checks []Check) bool {
	for _, c := range checks {
		if !c.OK && c.Severity == SeverityError {
			return false
		}
	}

	return true
}
