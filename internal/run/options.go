package run

import "time"

// ExecConfig holds configuration derived from options.
type ExecConfig struct {
	RetryAttempts int
	RetryDelay    time.Duration
}

// ExecOption defines a functional option for execution.
type ExecOption func(*ExecConfig)

// WithRetry enables retry logic for the command execution using linear backoff.
// attempts: Total number of attempts (including the initial one). Must be >= 1.
// delay: Duration to wait between attempts.
func WithRetry(attempts int, delay time.Duration) ExecOption {
	return func(c *ExecConfig) {
		if attempts < 1 {
			attempts = 1
		}

		c.RetryAttempts = attempts
		c.RetryDelay = delay
	}
}
