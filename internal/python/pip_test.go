package python

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/suhani2210/agentsetup/internal/run"
	"github.com/suhani2210/agentsetup/internal/run/runmock"
)

func TestUpgradePip(t *testing.T) {
	t.Parallel()

	env := runmock.New()
	tc := newToolchain(env)

	v := Venv{Dir: "venv", OS: run.OSLinux}

	env.On("Run", mock.Anything, mock.MatchedBy(func(c *run.Command) bool {
		return c.Cmd == "venv/bin/python" &&
			assert.ObjectsAreEqual([]string{"-m", "pip", "install", "--upgrade", "pip"}, c.Args)
	})).Return(&run.Result{ExitCode: 0}, nil)

	require.NoError(t, tc.UpgradePip(context.Background(), v, RetryPolicy{}))

	env.AssertExpectations(t)
}

func TestUpgradePip_RetriesOnNetworkFailure(t *testing.T) {
	t.Parallel()

	env := runmock.New()
	tc := newToolchain(env)

	v := Venv{Dir: "venv", OS: run.OSLinux}

	env.On("Run", mock.Anything, mock.Anything).Return(&run.Result{ExitCode: 1}, nil).Once()
	env.On("Run", mock.Anything, mock.Anything).Return(&run.Result{ExitCode: 0}, nil).Once()

	err := tc.UpgradePip(context.Background(), v, RetryPolicy{Attempts: 2, Delay: time.Millisecond})
	require.NoError(t, err)

	env.AssertExpectations(t)
}

func TestUpgradePip_Failure(t *testing.T) {
	t.Parallel()

	env := runmock.New()
	tc := newToolchain(env)

	v := Venv{Dir: "venv", OS: run.OSLinux}

	env.On("Run", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		cmd := args.Get(1).(*run.Command)
		_, _ = io.WriteString(cmd.Stderr, "Could not fetch URL")
	}).Return(&run.Result{ExitCode: 1}, nil)

	err := tc.UpgradePip(context.Background(), v, RetryPolicy{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upgrade pip")
	assert.Contains(t, err.Error(), "Could not fetch URL")
}

func TestInstallRequirements_StreamsOutput(t *testing.T) {
	t.Parallel()

	env := runmock.New()
	tc := newToolchain(env)

	v := Venv{Dir: "venv", OS: run.OSLinux}

	proc := new(runmock.Process)
	writeDone := make(chan struct{})

	env.On("Start", mock.Anything, mock.MatchedBy(func(c *run.Command) bool {
		return c.Cmd == "venv/bin/python" &&
			assert.ObjectsAreEqual([]string{"-m", "pip", "install", "-r", "requirements.txt"}, c.Args)
	})).Run(func(args mock.Arguments) {
		cmd := args.Get(1).(*run.Command)
		go func() {
			if w, ok := cmd.Stdout.(io.WriteCloser); ok {
				_, _ = w.Write([]byte("Collecting langchain\nSuccessfully installed\n"))
				_ = w.Close()
			}

			close(writeDone)
		}()
	}).Return(proc, nil)

	proc.On("Wait").Run(func(_ mock.Arguments) {
		<-writeDone
	}).Return(nil)
	proc.On("Close").Return(nil)

	err := tc.InstallRequirements(context.Background(), v, "requirements.txt", RetryPolicy{})
	require.NoError(t, err)

	env.AssertExpectations(t)
	proc.AssertExpectations(t)
}

func TestInstallRequirements_FailsAfterAttempts(t *testing.T) {
	t.Parallel()

	env := runmock.New()
	tc := newToolchain(env)

	v := Venv{Dir: "venv", OS: run.OSLinux}

	env.On("Start", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Times(2)

	err := tc.InstallRequirements(context.Background(), v, "requirements.txt", RetryPolicy{Attempts: 2, Delay: time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install dependencies from requirements.txt")
	assert.Contains(t, err.Error(), "connection reset")

	env.AssertExpectations(t)
}
