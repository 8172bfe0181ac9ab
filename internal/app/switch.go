package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/cvswitch/internal/config"
	"github.com/blackwell-systems/cvswitch/internal/output"
	"github.com/blackwell-systems/cvswitch/internal/resolver"
	"github.com/blackwell-systems/cvswitch/internal/switcher"
)

// switchTo performs the switch state machine for the root command's
// version-clue form and for undo. action labels the journal entry.
func switchTo(clue, action string) error {
	if err := ensureElevated(); err != nil {
		return err
	}

	cfg, err := loadConfig()
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

	ctrl := &switcher.Controller{
		Store:         newManager(cfg, st),
		Active:        newDetector(),
		Locator:       newLocator(cfg),
		Action:        action,
		DefaultPrefix: config.DefaultPrefix,
	}
	if st != nil {
		ctrl.Journal = storeJournal{st}
	}

	spinner := output.NewSpinner(fmt.Sprintf("Switching to %s", clue))
	spinner.Start()
	result, err := ctrl.SwitchTo(clue)
	spinner.Stop()
	if err != nil {
		var amb *resolver.AmbiguousError
		if errors.As(err, &amb) {
			fmt.Printf("Version %q matches more than one saved version:\n", amb.Clue)
			for _, c := range amb.Candidates {
				fmt.Printf("  %s\n", c)
			}
			fmt.Println("Re-run with a longer prefix.")
		}
		return err
	}

	if result.SavedCurrent {
		fmt.Printf("Saved the active %s before switching\n", result.PreviousVersion)
	}
	if result.Restore != nil && !result.Restore.MetadataRestored {
		fmt.Println("Warning: snapshot has no pkg-config metadata; .pc file left unchanged")
	}

	fmt.Printf("Now on OpenCV %s\n", result.Reported)
	if result.Reported != result.Target {
		fmt.Printf("Warning: expected %s but the installation reports %s\n", result.Target, result.Reported)
	}

	return nil
}
