package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/blackwell-systems/cvswitch/internal/app"
	"github.com/blackwell-systems/cvswitch/internal/opencv"
	"github.com/blackwell-systems/cvswitch/internal/pkgconf"
	"github.com/blackwell-systems/cvswitch/internal/resolver"
	"github.com/blackwell-systems/cvswitch/internal/snapshots"
)

// Exit codes, stable for scripting.
const (
	exitFailure        = 1
	exitNoInstallation = 2
	exitNoMatch        = 3
	exitMetadata       = 4
)

func main() {
	err := app.Execute()
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(exitCode(err))
}

// exitCode maps the error taxonomy onto distinct exit codes.
func exitCode(err error) int {
	var amb *resolver.AmbiguousError
	switch {
	case errors.Is(err, opencv.ErrNoInstallation):
		return exitNoInstallation
	case errors.Is(err, resolver.ErrNoMatch), errors.As(err, &amb):
		return exitNoMatch
	case errors.Is(err, pkgconf.ErrNotFound),
		errors.Is(err, pkgconf.ErrSearchPathUnset),
		errors.Is(err, snapshots.ErrPlaceholderMissing):
		return exitMetadata
	default:
		return exitFailure
	}
}
