package snapshots

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blackwell-systems/cvswitch/internal/opencv"
	"github.com/blackwell-systems/cvswitch/internal/pkgconf"
	"github.com/blackwell-systems/cvswitch/internal/store"
	"github.com/blackwell-systems/cvswitch/internal/sysfs"
)

// Create saves the given installation under its version string,
// destructively replacing any prior snapshot for that version.
//
// Headers and libraries are always captured. The metadata file is copied
// in when the locator finds one; when it does not, the save still
// succeeds but the result is marked degraded and the caller must warn the
// operator (typically with PKG_CONFIG_PATH guidance).
func (m *Manager) Create(inst *opencv.Installation, reason string) (*CreateResult, error) {
	if inst == nil || inst.Version == "" {
		return nil, fmt.Errorf("cannot save an installation without a version")
	}

	dir := m.Dir(inst.Version)
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("failed to clear prior snapshot %s: %w", inst.Version, err)
	}
	for _, sub := range []string{includeDirName, libDirName, pcDirName} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	if err := m.saveHeaders(inst, dir); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	libFiles, err := m.saveLibs(inst, dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	result := &CreateResult{Version: inst.Version, LibFiles: libFiles}

	loc, err := m.locator.Locate(inst.Version)
	switch {
	case err == nil:
		target := filepath.Join(dir, pcDirName, filepath.Base(loc.File))
		if err := sysfs.CopyFile(loc.File, target); err != nil {
			os.RemoveAll(dir)
			return nil, fmt.Errorf("failed to copy metadata file: %w", err)
		}
		result.PCSource = loc.File
	case errors.Is(err, pkgconf.ErrNotFound) || errors.Is(err, pkgconf.ErrSearchPathUnset):
		result.Degraded = true
	default:
		os.RemoveAll(dir)
		return nil, err
	}

	m.record(result, reason)

	return result, nil
}

// saveHeaders copies the OpenCV header subtrees into the snapshot. At
// least one subtree must exist, otherwise there is nothing worth saving.
func (m *Manager) saveHeaders(inst *opencv.Installation, dir string) error {
	found := false
	for _, sub := range headerSubdirs {
		src := filepath.Join(inst.IncludeDir, sub)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := sysfs.CopyTree(src, filepath.Join(dir, includeDirName, sub)); err != nil {
			return fmt.Errorf("failed to copy header tree %s: %w", src, err)
		}
		found = true
	}
	if !found {
		return fmt.Errorf("no OpenCV header tree under %s", inst.IncludeDir)
	}
	return nil
}

// saveLibs copies every library binary matching the known patterns.
func (m *Manager) saveLibs(inst *opencv.Installation, dir string) (int, error) {
	total := 0
	for _, pattern := range libPatterns {
		n, err := sysfs.CopyGlob(inst.LibDir, pattern, filepath.Join(dir, libDirName))
		if err != nil {
			return total, fmt.Errorf("failed to copy libraries %s: %w", pattern, err)
		}
		total += n
	}
	return total, nil
}

// record writes the index entry and a journal event. Index failures are
// non-fatal: the directory on disk is the source of truth.
func (m *Manager) record(result *CreateResult, reason string) {
	if m.store == nil {
		return
	}

	rec := &store.SnapshotRecord{
		Version:   result.Version,
		CreatedAt: time.Now(),
		Reason:    reason,
		Degraded:  result.Degraded,
		PCSource:  result.PCSource,
		LibFiles:  result.LibFiles,
	}
	if err := m.store.UpsertSnapshot(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to index snapshot %s: %v\n", result.Version, err)
		return
	}

	ev := &store.Event{
		Action:    store.ActionSave,
		ToVersion: result.Version,
		Detail:    reason,
	}
	if err := m.store.InsertEvent(ev); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to journal save of %s: %v\n", result.Version, err)
	}
}

// Exists reports whether a snapshot directory for version exists and is
// non-empty.
func (m *Manager) Exists(version string) bool {
	entries, err := os.ReadDir(m.Dir(version))
	return err == nil && len(entries) > 0
}

// List returns the stored version strings, derived from the subdirectory
// names under the storage root. No ordering is guaranteed.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read storage root: %w", err)
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	return versions, nil
}
