// Package runmock provides a testify-backed mock implementation of the run
// interfaces so provisioning steps can be tested without external tools.
package runmock

import (
	"context"
	"io"
	"os"

	"github.com/stretchr/testify/mock"
	"github.com/suhani2210/agentsetup/internal/run"
)

// Environment implements a mock run.Environment using testify/mock.
type Environment struct {
	mock.Mock
}

var _ run.Environment = (*Environment)(nil)

// New creates a new mock environment.
func New() *Environment {
	return &Environment{}
}

// Run mocks running a command to completion.
func (m *Environment) Run(ctx context.Context, cmd *run.Command) (*run.Result, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*run.Result), args.Error(1)
}

// Start mocks starting a command asynchronously.
func (m *Environment) Start(ctx context.Context, cmd *run.Command) (run.Process, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(run.Process), args.Error(1)
}

// TargetOS mocks returning the target operating system.
func (m *Environment) TargetOS() run.TargetOS {
	args := m.Called()

	return args.Get(0).(run.TargetOS)
}

// LookPath mocks resolving an executable on the search path.
func (m *Environment) LookPath(_ context.Context, file string) (string, error) {
	args := m.Called(file)

	return args.String(0), args.Error(1)
}

// Close mocks closing the environment.
func (m *Environment) Close() error {
	args := m.Called()

	return args.Error(0)
}

// Process implements a mock run.Process using testify/mock.
type Process struct {
	mock.Mock
}

var _ run.Process = (*Process)(nil)

// Wait mocks waiting for the process to complete.
func (m *Process) Wait() error {
	args := m.Called()

	return args.Error(0)
}

// Result mocks returning the process result.
func (m *Process) Result() *run.Result {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(*run.Result)
}

// Signal mocks sending a signal to the process.
func (m *Process) Signal(sig os.Signal) error {
	args := m.Called(sig)

	return args.Error(0)
}

// Close mocks closing the process.
func (m *Process) Close() error {
	args := m.Called()

	return args.Error(0)
}

// WriteOutput is a helper to simulate output writing for mocked processes.
// Usage: mockProcess.On("Wait").Run(WriteOutput(cmd.Stdout, "output")).Return(nil).
func WriteOutput(w io.Writer, content string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		if w != nil {
			_, _ = io.WriteString(w, content)
		}
	}
}
