package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the currently active OpenCV version",
	Long: `Derive the active version from the live installation.

The version is read from the installed headers at the prefix pkg-config
reports, never from a cache, so it reflects whatever is actually on the
system right now.`,
	Example: `  # Show the active version
  cvswitch current`,
	Args: cobra.NoArgs,
	RunE: runCurrent,
}

func init() {
	RootCmd.AddCommand(currentCmd)
}

func runCurrent(cmd *cobra.Command, args []string) error {
	inst, err := newDetector().Detect()
	if err != nil {
		return err
	}

	fmt.Printf("OpenCV %s\n", inst.Version)
	fmt.Printf("  prefix:   %s\n", inst.Prefix)
	fmt.Printf("  headers:  %s\n", inst.IncludeDir)
	fmt.Printf("  libraries: %s\n", inst.LibDir)
	return nil
}
