// Package pkgconf talks to pkg-config: it queries compile flags for the
// active OpenCV installation and locates the .pc metadata file that
// describes a given version.
package pkgconf

import (
	"fmt"
	"os/exec"
	"strings"
)

// Runner issues pkg-config queries. The production implementation shells
// out; tests substitute an in-memory fake.
type Runner interface {
	// Cflags returns the --cflags output for pkg, e.g.
	// "-I/usr/local/include/opencv -I/usr/local/include".
	Cflags(pkg string) (string, error)
}

// ExecRunner runs the real pkg-config binary.
type ExecRunner struct{}

// Cflags implements Runner.
func (ExecRunner) Cflags(pkg string) (string, error) {
	cmd := exec.Command("pkg-config", "--cflags", pkg)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("pkg-config --cflags %s failed: %w (stderr: %s)", pkg, err, string(exitErr.Stderr))
		}
		return "", fmt.Errorf("pkg-config --cflags %s failed: %w", pkg, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// prefixSuffixes are the include-path tails stripped from the first -I flag
// to recover the install prefix, longest first.
var prefixSuffixes = []string{
	"/include/opencv4",
	"/include/opencv2",
	"/include/opencv",
	"/include",
}

// PrefixFromCflags derives the install prefix from pkg-config --cflags
// output by taking the first -I path and stripping the known include
// suffix. Returns "" when no -I flag is present or no suffix matches.
func PrefixFromCflags(cflags string) string {
	for _, field := range strings.Fields(cflags) {
		if !strings.HasPrefix(field, "-I") {
			continue
		}
		dir := strings.TrimPrefix(field, "-I")
		for _, suffix := range prefixSuffixes {
			if strings.HasSuffix(dir, suffix) {
				return strings.TrimSuffix(dir, suffix)
			}
		}
		return ""
	}
	return ""
}
