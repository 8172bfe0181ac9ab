package app

import (
	"fmt"

	"github.com/blackwell-systems/cvswitch/internal/output"
	"github.com/blackwell-systems/cvswitch/internal/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved OpenCV versions",
	Long: `List every saved version in the storage root.

The active version is marked with an asterisk. Save time, reason, and
metadata state come from the snapshot index; versions saved by other
tools show dashes there but remain fully switchable.`,
	Example: `  # List saved versions (also the default with no arguments)
  cvswitch list`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	versions, err := newManager(cfg, nil).List()
	if err != nil {
		return err
	}

	records := make(map[string]*store.SnapshotRecord)
	if st, err := openStore(cfg); err == nil {
		defer st.Close()
		if recs, err := st.ListSnapshots(); err == nil {
			for _, rec := range recs {
				records[rec.Version] = rec
			}
		}
	}

	// Listing must work without an installation; the marker is best effort.
	active := ""
	if inst, err := newDetector().Detect(); err == nil {
		active = inst.Version
	}

	fmt.Print(output.RenderVersionTable(versions, records, active))
	return nil
}
