package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/cvswitch/internal/config"
	"github.com/blackwell-systems/cvswitch/internal/elevate"
	"github.com/blackwell-systems/cvswitch/internal/opencv"
	"github.com/blackwell-systems/cvswitch/internal/pkgconf"
	"github.com/blackwell-systems/cvswitch/internal/snapshots"
	"github.com/blackwell-systems/cvswitch/internal/store"
)

// loadConfig builds the runtime configuration, honoring the --store flag.
func loadConfig() (*config.Config, error) {
	if storeRootFlag != "" {
		if err := os.MkdirAll(storeRootFlag, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage root: %w", err)
		}
		return config.ForRoot(storeRootFlag, os.Getenv("PKG_CONFIG_PATH")), nil
	}
	return config.Load()
}

// openStore opens the sqlite index. Failures are surfaced to the caller;
// most commands treat a broken index as a warning, not a stop.
func openStore(cfg *config.Config) (*store.Store, error) {
	return store.New(cfg.DBPath)
}

// newLocator builds the metadata locator from the configured search path.
func newLocator(cfg *config.Config) *pkgconf.Locator {
	return &pkgconf.Locator{
		SearchPath: cfg.PkgConfigPath,
		DefaultDir: config.DefaultPCDir,
	}
}

// newDetector builds the live-installation query.
func newDetector() *opencv.Detector {
	return &opencv.Detector{Runner: pkgconf.ExecRunner{}}
}

// newManager builds the snapshot store. st may be nil.
func newManager(cfg *config.Config, st *store.Store) *snapshots.Manager {
	return snapshots.New(cfg.StoreRoot, st, newLocator(cfg))
}

// storeJournal adapts the sqlite store to the switch controller's journal.
type storeJournal struct {
	st *store.Store
}

func (j storeJournal) RecordSwitch(action, from, to string) error {
	return j.st.InsertEvent(&store.Event{
		Action:      action,
		FromVersion: from,
		ToVersion:   to,
	})
}

// ensureElevated re-runs the process under sudo when the current one
// cannot write the active installation. Does not return after a re-exec.
func ensureElevated() error {
	if !elevate.Required() {
		return nil
	}
	code, err := elevate.Rerun()
	if err != nil {
		return err
	}
	os.Exit(code)
	return nil
}

// pkgConfigGuidance is the remediation text printed when the metadata
// file cannot be located during a save.
const pkgConfigGuidance = `  The save kept headers and libraries, but no pkg-config metadata file
  was found, so a later restore cannot place one.

  Check that PKG_CONFIG_PATH points at the directory containing opencv.pc:
    pkg-config --variable pc_path pkg-config
    export PKG_CONFIG_PATH=/usr/local/lib/pkgconfig
  When running under sudo, the variable must be forwarded explicitly.`
