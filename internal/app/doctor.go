package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/blackwell-systems/cvswitch/internal/opencv"
	"github.com/blackwell-systems/cvswitch/internal/pkgconf"
	"github.com/blackwell-systems/cvswitch/internal/watcher"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose common issues and check system health",
	Long: `Runs diagnostic checks on the cvswitch setup.

Checks:
  • pkg-config is installed
  • PKG_CONFIG_PATH is set and holds a metadata file
  • An active OpenCV installation is detected
  • The storage root is writable and the index database opens
  • Watch daemon status`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println("Running cvswitch diagnostics...")
	fmt.Println()

	// Critical failures exit 1, warnings-only exits 0 with a note.
	criticalIssues := 0
	warningIssues := 0

	cfg, err := loadConfig()
	if err != nil {
		fmt.Println("✗ Cannot build configuration:", err)
		return fmt.Errorf("diagnostics found a critical issue")
	}

	// Check 1: pkg-config binary
	if _, err := exec.LookPath("pkg-config"); err != nil {
		fmt.Println("✗ pkg-config not found in PATH")
		fmt.Println("  Action: install pkg-config; cvswitch cannot locate installations without it")
		criticalIssues++
	} else {
		fmt.Println("✓ pkg-config found")
	}

	// Check 2: search path
	if cfg.PkgConfigPath == "" {
		fmt.Println("⚠ PKG_CONFIG_PATH is not set")
		fmt.Println("  Action: export PKG_CONFIG_PATH=/usr/local/lib/pkgconfig (and forward it through sudo)")
		warningIssues++
	} else {
		fmt.Println("✓ PKG_CONFIG_PATH set:", cfg.PkgConfigPath)
	}

	// Check 3: active installation
	inst, err := newDetector().Detect()
	switch {
	case err == nil:
		fmt.Printf("✓ Active installation: OpenCV %s at %s\n", inst.Version, inst.Prefix)

		// Check 4: metadata file for the active version
		if loc, err := newLocator(cfg).Locate(inst.Version); err == nil {
			if loc.Status == pkgconf.StatusExact {
				fmt.Println("✓ Metadata file matches:", loc.File)
			} else {
				fmt.Println("⚠ Metadata file found but its version does not match:", loc.File)
				fmt.Println("  A save would keep it as an unverified placeholder")
				warningIssues++
			}
		} else {
			fmt.Println("⚠ No metadata file located:", err)
			warningIssues++
		}
	case errors.Is(err, opencv.ErrNoInstallation):
		fmt.Println("⚠ No active OpenCV installation detected")
		fmt.Println("  Saving requires one; switching still works")
		warningIssues++
	default:
		fmt.Println("✗ Installation detection failed:", err)
		criticalIssues++
	}

	// Check 5: storage root writable
	probe := filepath.Join(cfg.StoreRoot, ".doctor-probe")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		fmt.Println("✗ Storage root not writable:", cfg.StoreRoot)
		fmt.Println("  Action: check ownership of", cfg.StoreRoot)
		criticalIssues++
	} else {
		os.Remove(probe)
		fmt.Println("✓ Storage root writable:", cfg.StoreRoot)
	}

	// Check 6: index database
	if st, err := openStore(cfg); err != nil {
		fmt.Println("⚠ Snapshot index cannot be opened:", err)
		fmt.Println("  Saves and switches still work; listings lose detail")
		warningIssues++
	} else {
		st.Close()
		fmt.Println("✓ Snapshot index accessible")
	}

	// Check 7: watch daemon, informational
	if running, err := watcher.IsDaemonRunning(cfg.PIDFile); err == nil && running {
		fmt.Println("✓ Watch daemon running")
	} else {
		fmt.Println("  Watch daemon not running (optional; start with 'cvswitch watch --daemon')")
	}

	fmt.Println()
	switch {
	case criticalIssues > 0:
		return fmt.Errorf("diagnostics found %d critical issue(s)", criticalIssues)
	case warningIssues > 0:
		fmt.Printf("Diagnostics passed with %d warning(s)\n", warningIssues)
	default:
		fmt.Println("All diagnostics passed")
	}
	return nil
}
