// Package run provides a unified interface for invoking external tools.
//
// # Core Interfaces
//
// - Environment: the system commands execute on (local machine, or a mock in tests).
// - Process: a running command handle (allows Wait, Signal, Close).
//
// # Streaming
//
// `run` is streaming-first. Output is not buffered by default; attach an
// `io.Writer` to your `Command` to capture stdout/stderr, or use the
// `Executor` wrapper for the common buffered cases.
//
// The provisioner routes every interpreter and installer invocation through
// this seam so the whole sequence can be exercised without a Python toolchain.
package run

import (
	"context"
	"io"
	"os"
)

// Environment abstracts the underlying system where commands are executed.
type Environment interface {
	io.Closer

	// Run executes a command synchronously.
	// Returns the result (exit code, error). Output is not captured by default; use Command.Stdout/Stderr.
	Run(ctx context.Context, cmd *Command) (*Result, error)

	// Start initiates a command asynchronously.
	// The caller manages the returned Process (Wait/Signal) and must ensure resources are released via
	// either Wait() or Close().
	Start(ctx context.Context, cmd *Command) (Process, error)

	// TargetOS returns the operating system of the target environment.
	TargetOS() TargetOS

	// LookPath searches for an executable named file in the directories named by
	// the PATH environment variable.
	LookPath(ctx context.Context, file string) (string, error)
}

// Process represents a command that has been started but not yet completed.
type Process interface {
	io.Closer

	// Wait blocks until the process exits.
	// Returns an error if the exit code is non-zero.
	Wait() error

	// Result returns metadata (exit code, termination status) (only valid after Wait).
	Result() *Result

	// Signal sends an OS signal to the process.
	Signal(sig os.Signal) error
}
