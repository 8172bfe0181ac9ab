package app

import (
	"fmt"

	"github.com/blackwell-systems/cvswitch/internal/output"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the currently active OpenCV version",
	Long: `Snapshot the active OpenCV installation under its version string.

The header tree, the library binaries, and the pkg-config metadata file
are copied into the storage root. Saving a version that was saved before
replaces the previous snapshot entirely.

When the metadata file cannot be located the save still keeps headers
and libraries, but the snapshot is marked degraded and a later restore
cannot place a .pc file.`,
	Example: `  # Save the active version
  cvswitch save`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func init() {
	RootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	if err := ensureElevated(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inst, err := newDetector().Detect()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		fmt.Printf("Warning: snapshot index unavailable: %v\n", err)
		st = nil
	} else {
		defer st.Close()
	}

	spinner := output.NewSpinner(fmt.Sprintf("Saving %s", inst.Version))
	spinner.Start()
	result, err := newManager(cfg, st).Create(inst, "manual save")
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", inst.Version, err)
	}

	fmt.Printf("Saved %s (%d library files)\n", result.Version, result.LibFiles)
	if result.Degraded {
		fmt.Println()
		fmt.Println("Warning: saved without pkg-config metadata")
		fmt.Println(pkgConfigGuidance)
	}

	return nil
}
