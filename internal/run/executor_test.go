package run

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEnv is a simple mock for testing Executor.
type MockEnv struct {
	mock.Mock
}

func (m *MockEnv) Run(ctx context.Context, cmd *Command) (*Result, error) {
	args := m.Called(ctx, cmd)
	if r := args.Get(0); r != nil {
		return r.(*Result), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockEnv) Start(ctx context.Context, cmd *Command) (Process, error) {
	args := m.Called(ctx, cmd)
	if p := args.Get(0); p != nil {
		return p.(Process), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockEnv) Close() error {
	return m.Called().Error(0)
}

func (m *MockEnv) TargetOS() TargetOS {
	return OSLinux
}

func (m *MockEnv) LookPath(_ context.Context, file string) (string, error) {
	args := m.Called(file)

	return args.String(0), args.Error(1)
}

// MockProcess is a mock for run.Process.
type MockProcess struct {
	mock.Mock
}

func (m *MockProcess) Wait() error {
	return m.Called().Error(0)
}

func (m *MockProcess) Result() *Result {
	args := m.Called()
	if r := args.Get(0); r != nil {
		return r.(*Result)
	}

	return nil
}

func (m *MockProcess) Signal(sig os.Signal) error {
	return m.Called(sig).Error(0)
}

func (m *MockProcess) Close() error {
	return m.Called().Error(0)
}

func TestExecutor_LookPath(t *testing.T) {
	t.Parallel()

	mockEnv := new(MockEnv)
	exec := NewExecutor(mockEnv)

	// Success case: Environment finds the path
	mockEnv.On("LookPath", "python3").Return("/usr/bin/python3", nil)

	path, err := exec.LookPath(context.Background(), "python3")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/python3", path)

	// Failure case: Environment returns error
	mockEnv.On("LookPath", "missing").Return("", errors.New("exec: executable file not found in $PATH"))

	_, err = exec.LookPath(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exec: executable file not found")
}

func TestExecutor_RunBuffered(t *testing.T) {
	t.Parallel()

	mockEnv := new(MockEnv)
	exec := NewExecutor(mockEnv)

	mockEnv.On("Run", mock.Anything, mock.MatchedBy(func(c *Command) bool {
		return c.Cmd == "python3" && c.Stdout != nil && c.Stderr != nil
	})).Run(func(args mock.Arguments) {
		cmd := args.Get(1).(*Command)
		_, _ = io.WriteString(cmd.Stdout, "Python 3.11.4\n")
	}).Return(&Result{ExitCode: 0}, nil)

	res, err := exec.RunBuffered(context.Background(), &Command{Cmd: "python3", Args: []string{"--version"}})
	require.NoError(t, err)
	assert.Equal(t, "Python 3.11.4\n", string(res.Stdout))
	assert.Empty(t, res.Stderr)
}

func TestExecutor_RunBuffered_StderrOnExitError(t *testing.T) {
	t.Parallel()

	mockEnv := new(MockEnv)
	exec := NewExecutor(mockEnv)

	mockEnv.On("Run", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		cmd := args.Get(1).(*Command)
		_, _ = io.WriteString(cmd.Stderr, "No module named venv")
	}).Return(&Result{ExitCode: 1}, nil)

	_, err := exec.RunBuffered(context.Background(), &Command{Cmd: "python3", Args: []string{"-m", "venv", "venv"}})
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode)
	assert.Contains(t, string(exitErr.Stderr), "No module named venv")
}

func TestExecutor_Start(t *testing.T) {
	t.Parallel()

	mockEnv := new(MockEnv)
	exec := NewExecutor(mockEnv)

	mockProc := new(MockProcess)

	mockEnv.On("Start", mock.Anything, mock.MatchedBy(func(c *Command) bool {
		return c.Cmd == "sleep"
	})).Return(mockProc, nil)

	_, err := exec.Start(context.Background(), &Command{Cmd: "sleep"})
	assert.NoError(t, err)
}

func TestExecutor_RunLineStream(t *testing.T) {
	t.Parallel()

	mockEnv := new(MockEnv)
	exec := NewExecutor(mockEnv)
	mockProc := new(MockProcess) // Create a mock process

	// Use a channel to synchronize write completion
	writeDone := make(chan struct{})

	mockEnv.On("Start", mock.Anything, mock.MatchedBy(func(c *Command) bool {
		return c.Cmd == "pip" && c.Stdout != nil
	})).Run(func(args mock.Arguments) {
		cmd := args.Get(1).(*Command)
		// Write some data to the pipe asynchronously
		go func() {
			if w, ok := cmd.Stdout.(io.WriteCloser); ok {
				_, _ = w.Write([]byte("Collecting requests\nInstalling collected packages\n"))
				_ = w.Close()
			}

			close(writeDone) // Signal done
		}()
	}).Return(mockProc, nil)

	// Make Wait block until writes are done
	mockProc.On("Wait").Run(func(_ mock.Arguments) {
		<-writeDone
	}).Return(nil)
	mockProc.On("Close").Return(nil)

	var lines []string

	err := exec.RunLineStream(context.Background(), &Command{Cmd: "pip"}, func(line string) {
		lines = append(lines, line)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Collecting requests", "Installing collected packages"}, lines)
}

func TestExecutor_RunLineStream_WaitFailure(t *testing.T) {
	t.Parallel()

	mockEnv := new(MockEnv)
	exec := NewExecutor(mockEnv)
	mockProc := new(MockProcess)

	writeDone := make(chan struct{})

	// The command emits a line and then fails without ever closing its
	// stdout. The stream must still be drained and the scanner must still
	// terminate.
	mockEnv.On("Start", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		cmd := args.Get(1).(*Command)
		go func() {
			_, _ = cmd.Stdout.Write([]byte("Collecting flask\n"))
			close(writeDone)
		}()
	}).Return(mockProc, nil)

	mockProc.On("Wait").Run(func(_ mock.Arguments) {
		<-writeDone
	}).Return(errors.New("exit status 1"))
	mockProc.On("Close").Return(nil)

	var lines []string

	err := exec.RunLineStream(context.Background(), &Command{Cmd: "pip"}, func(line string) {
		lines = append(lines, line)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 1")
	// The scanner observed everything written before the failure, which
	// also proves the pipe was closed and the scan goroutine finished.
	assert.Equal(t, []string{"Collecting flask"}, lines)
}

func TestExecutor_Run_Retry(t *testing.T) {
	t.Parallel()

	mockEnv := new(MockEnv)
	exec := NewExecutor(mockEnv)

	// We expect the command to fail twice, then succeed on the third try
	cmd := &Command{Cmd: "flaky"}

	// Failure 1
	mockEnv.On("Run", mock.Anything, cmd).Return(&Result{ExitCode: 1}, nil).Once()
	// Failure 2
	mockEnv.On("Run", mock.Anything, cmd).Return(nil, errors.New("transport error")).Once()
	// Success
	mockEnv.On("Run", mock.Anything, cmd).Return(&Result{ExitCode: 0}, nil).Once()

	// Execute with 3 attempts and a tiny delay
	res, err := exec.Run(context.Background(), cmd, WithRetry(3, time.Millisecond))

	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, 0, res.ExitCode)

	mockEnv.AssertExpectations(t)
}

func TestExecutor_Run_RetryFail(t *testing.T) {
	t.Parallel()

	mockEnv := new(MockEnv)
	exec := NewExecutor(mockEnv)

	cmd := &Command{Cmd: "always_fail"}

	// Should run 2 times and fail both
	mockEnv.On("Run", mock.Anything, cmd).Return(&Result{ExitCode: 1}, nil).Times(2)

	// Execute with 2 attempts
	res, err := exec.Run(context.Background(), cmd, WithRetry(2, time.Millisecond))

	require.Error(t, err)

	var exitErr *ExitError
	if assert.ErrorAs(t, err, &exitErr) {
		assert.Equal(t, 1, exitErr.ExitCode)
	}

	assert.NotNil(t, res)
	assert.Equal(t, 1, res.ExitCode)

	mockEnv.AssertExpectations(t)
}

func TestExecutor_Run_RetryCanceled(t *testing.T) {
	t.Parallel()

	mockEnv := new(MockEnv)
	exec := NewExecutor(mockEnv)

	cmd := &Command{Cmd: "flaky"}

	mockEnv.On("Run", mock.Anything, cmd).Return(&Result{ExitCode: 1}, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The first attempt runs; the retry wait observes the canceled context.
	_, err := exec.Run(ctx, cmd, WithRetry(3, time.Hour))
	require.ErrorIs(t, err, context.Canceled)

	mockEnv.AssertExpectations(t)
}
