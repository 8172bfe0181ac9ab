package app

import (
	"fmt"

	"github.com/blackwell-systems/cvswitch/internal/output"
	"github.com/spf13/cobra"
)

var (
	historyLimit int

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show recent saves, switches, and external changes",
		Long: `Print the event journal: every save, switch, undo, and externally
detected modification of the active installation, newest first.`,
		Example: `  # Show the last 20 events
  cvswitch history

  # Show more
  cvswitch history --limit 100`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of events to show")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open snapshot index: %w", err)
	}
	defer st.Close()

	events, err := st.ListEvents(historyLimit)
	if err != nil {
		return err
	}

	fmt.Print(output.RenderEventTable(events))
	return nil
}
