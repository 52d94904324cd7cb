package local

import "github.com/suhani2210/agentsetup/internal/run"

// Config holds configuration for the local environment.
// Currently minimal but allows for future extensibility (e.g. custom shell).
type Config struct {
	targetOS run.TargetOS
}

// Option defines a functional option for the local provider.
type Option func(*Config)

// WithTargetOS overrides the detected host OS. Used in tests to exercise the
// Windows activation branch from non-Windows hosts.
func WithTargetOS(os run.TargetOS) Option {
	return func(c *Config) {
		c.targetOS = os
	}
}
