// Package agentsetup provisions a local development environment for the
// Trading-Agents Python application.
//
// The heavy lifting lives under internal/: command execution (internal/run),
// Python toolchain operations (internal/python), filesystem scaffolding
// (internal/scaffold) and the ordered step engine (internal/provision). This
// package only carries metadata shared between them and the CLI.
package agentsetup

// Version is the current release of agentsetup.
// Overridden at build time via -ldflags for tagged releases.
var Version = "0.1.0-dev"
