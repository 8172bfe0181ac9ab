// Package switcher orchestrates the save-before-switch state machine:
// resolve the requested version, make sure the active installation is
// snapshotted, then replay the target snapshot.
package switcher

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/blackwell-systems/cvswitch/internal/opencv"
	"github.com/blackwell-systems/cvswitch/internal/pkgconf"
	"github.com/blackwell-systems/cvswitch/internal/resolver"
	"github.com/blackwell-systems/cvswitch/internal/snapshots"
)

// SnapshotStore is the slice of the snapshot manager the controller
// consumes. Tests substitute a fake.
type SnapshotStore interface {
	List() ([]string, error)
	Exists(version string) bool
	Create(inst *opencv.Installation, reason string) (*snapshots.CreateResult, error)
	Restore(version string, paths snapshots.ActivePaths) (*snapshots.RestoreResult, error)
}

// ActiveQuery derives the live installation view on demand.
type ActiveQuery interface {
	Detect() (*opencv.Installation, error)
}

// Locator finds the active metadata file location a restore writes over.
type Locator interface {
	Locate(expected string) (*pkgconf.Location, error)
}

// Journal records completed switches. Optional.
type Journal interface {
	RecordSwitch(action, from, to string) error
}

// Controller performs version switches.
type Controller struct {
	Store   SnapshotStore
	Active  ActiveQuery
	Locator Locator
	Journal Journal

	// Action labels journal entries; "switch" when empty. The undo
	// command sets "undo".
	Action string

	// DefaultPrefix receives the restore when no active installation
	// exists to derive paths from.
	DefaultPrefix string
}

// Result reports a completed switch.
type Result struct {
	// Target is the resolved version that was restored.
	Target string

	// Reported is the version re-derived from the live installation
	// after the restore. It normally equals Target; a mismatch surfaces
	// an inconsistency the operator should see.
	Reported string

	// SavedCurrent is set when the previously active version was
	// implicitly snapshotted before the restore.
	SavedCurrent bool

	// PreviousVersion is the version that was active before the switch,
	// "" when none was detected.
	PreviousVersion string

	Restore *snapshots.RestoreResult
}

// SwitchTo resolves clue against the saved versions and switches to the
// match.
//
// The safety invariant: an unsaved active installation is snapshotted
// before anything is overwritten, and if that save fails the switch
// aborts with the system untouched.
func (c *Controller) SwitchTo(clue string) (*Result, error) {
	versions, err := c.Store.List()
	if err != nil {
		return nil, err
	}

	target, err := resolver.Resolve(clue, versions)
	if err != nil {
		return nil, err
	}

	result := &Result{Target: target}

	// The restore paths come from the pre-switch active prefix, matching
	// the long-standing behavior even though the restored metadata file
	// may declare a different prefix. See the note in the restore tests.
	inst, err := c.Active.Detect()
	if err != nil && !errors.Is(err, opencv.ErrNoInstallation) {
		return nil, err
	}

	paths := c.activePaths(inst)

	if inst != nil && inst.Version != "" {
		result.PreviousVersion = inst.Version
		if !c.Store.Exists(inst.Version) {
			if _, err := c.Store.Create(inst, "pre-switch save"); err != nil {
				return nil, fmt.Errorf("failed to save the active version %s before switching (system unchanged, still on %s): %w",
					inst.Version, inst.Version, err)
			}
			result.SavedCurrent = true
		}
	}

	restore, err := c.Store.Restore(target, paths)
	if err != nil {
		return nil, err
	}
	result.Restore = restore

	if c.Journal != nil {
		action := c.Action
		if action == "" {
			action = "switch"
		}
		if err := c.Journal.RecordSwitch(action, result.PreviousVersion, target); err != nil {
			return nil, err
		}
	}

	// Report the version the system actually ends up on, not the one we
	// asked for.
	result.Reported = target
	if after, err := c.Active.Detect(); err == nil {
		result.Reported = after.Version
	}

	return result, nil
}

// activePaths derives the restore destinations from the live install,
// falling back to the default prefix when nothing is installed.
func (c *Controller) activePaths(inst *opencv.Installation) snapshots.ActivePaths {
	paths := snapshots.ActivePaths{}
	expected := ""
	if inst != nil {
		paths.IncludeDir = inst.IncludeDir
		paths.LibDir = inst.LibDir
		expected = inst.Version
	} else {
		paths.IncludeDir = filepath.Join(c.DefaultPrefix, "include")
		paths.LibDir = filepath.Join(c.DefaultPrefix, "lib")
	}

	if c.Locator != nil {
		if loc, err := c.Locator.Locate(expected); err == nil {
			paths.PCPath = loc.File
		}
	}

	return paths
}
