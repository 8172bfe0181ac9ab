package sysfs

import (
	"fmt"
	"os"
	"os/exec"
)

// RefreshLinkerCache runs ldconfig so the dynamic linker picks up the
// libraries a restore just put in place. Fire-and-forget: a failure is
// reported on stderr but never fails the restore that triggered it.
func RefreshLinkerCache() {
	if err := exec.Command("ldconfig").Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ldconfig failed: %v (run it manually)\n", err)
	}
}
