//go:build windows

package local

import (
	"os/exec"
	"strconv"
)

// killProcessGroup kills the process group with the given PID.
//
// taskkill /T takes the whole tree down, which is all a one-shot
// provisioner needs. Job Objects would only matter for resource limits.
func killProcessGroup(pid int) error {
	return exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(pid)).Run()
}

// setProcessGroup sets the process group for the given command.
func setProcessGroup(_ *exec.Cmd) {
	// No process-group setup needed on Windows; see killProcessGroup.
}
