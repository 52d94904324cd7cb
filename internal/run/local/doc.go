// Package local provides an implementation of the run.Environment interface
// for the local operating system.
//
// It serves as a thin wrapper around the standard library's "os/exec"
// package, adapting it to the unified run interfaces. This is the only real
// environment the provisioner ships; tests substitute runmock.
//
// Usage:
//
//	env := local.New()
//	res, _ := env.Run(ctx, &run.Command{Cmd: "python3", Args: []string{"--version"}})
//	_ = res
package local
