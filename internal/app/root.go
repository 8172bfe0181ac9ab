package app

import (
	"github.com/spf13/cobra"
)

var (
	storeRootFlag string

	// RootCmd is the root command for cvswitch. Any positional argument
	// that is not a subcommand is treated as a version clue to switch to;
	// with no argument the saved versions are listed.
	RootCmd = &cobra.Command{
		Use:   "cvswitch [version]",
		Short: "Snapshot and switch between installed OpenCV versions",
		Long: `cvswitch saves the headers, libraries, and pkg-config metadata of the
currently installed OpenCV version and switches between saved versions
in place.

Each saved version lives under ~/.cvswitch/<version>/ with its header
tree, library binaries, and .pc file. Switching restores a saved version
into the active installation prefix, after implicitly saving whatever
is active now, so nothing is ever lost.

A version argument is matched as a literal prefix against the saved
versions: "2.4" selects "2.4.9.0" when it is the only saved version
starting with 2.4, and an ambiguous prefix lists the candidates.

Mutating commands re-run themselves under sudo when needed, forwarding
PKG_CONFIG_PATH so pkg-config still finds the active installation.

Examples:
  # Save the active version
  cvswitch save

  # List saved versions
  cvswitch

  # Show the active version
  cvswitch current

  # Switch to a saved version by prefix
  cvswitch 2.4

  # Switch back
  cvswitch undo`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runList(cmd, args)
			}
			return switchTo(args[0], "switch")
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&storeRootFlag, "store", "", "storage root (default: ~/.cvswitch)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}
