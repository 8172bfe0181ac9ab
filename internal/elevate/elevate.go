// Package elevate handles the one capability check performed before any
// mutating operation: are we allowed to write the active installation?
// When not, the whole process is re-invoked under sudo.
package elevate

import (
	"fmt"
	"os"
	"os/exec"
)

// DisableEnv opts out of the sudo re-exec, for tests and CI sandboxes
// where the storage root and installation prefix are writable anyway.
const DisableEnv = "CVSWITCH_NO_SUDO"

// Required reports whether the current process lacks the rights mutating
// commands need.
func Required() bool {
	if os.Getenv(DisableEnv) != "" {
		return false
	}
	return os.Geteuid() != 0
}

// Rerun re-invokes the current binary under sudo with the same arguments
// and blocks until it finishes, returning its exit code. PKG_CONFIG_PATH
// is passed explicitly on the sudo command line because sudo's env
// scrubbing would otherwise drop it, and without it the metadata locator
// cannot see the active .pc file.
func Rerun() (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to resolve executable path: %w", err)
	}

	args := []string{"PKG_CONFIG_PATH=" + os.Getenv("PKG_CONFIG_PATH"), exe}
	args = append(args, os.Args[1:]...)

	cmd := exec.Command("sudo", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("failed to run sudo: %w", err)
	}
	return 0, nil
}
