package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Switch back to the previously active version",
	Long: `Undo the most recent switch by restoring the version that was active
before it.

The previous version comes from the event journal; a switch performed
before the journal existed, or one whose prior version was never
detected, cannot be undone this way; switch to it by name instead.`,
	Example: `  # Switch back after a switch
  cvswitch undo`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	RootCmd.AddCommand(undoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open snapshot index: %w", err)
	}

	last, err := st.LastSwitchEvent()
	st.Close()
	if err != nil {
		return err
	}
	if last == nil {
		return fmt.Errorf("nothing to undo: no switch recorded")
	}
	if last.FromVersion == "" {
		return fmt.Errorf("cannot undo: no version was active before the last switch")
	}

	fmt.Printf("Undoing switch to %s, going back to %s\n", last.ToVersion, last.FromVersion)
	return switchTo(last.FromVersion, "undo")
}
