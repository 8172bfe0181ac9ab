package snapshots

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/cvswitch/internal/sysfs"
)

// ErrPlaceholderMissing reports that a snapshot carries a metadata file
// but no active metadata location exists to copy it over. It means the
// metadata-location step never succeeded for the installation being
// displaced.
var ErrPlaceholderMissing = errors.New("no active pkg-config location to restore the metadata file to")

// refreshLinkerCache is swapped out by tests; restores must not run the
// real ldconfig there.
var refreshLinkerCache = sysfs.RefreshLinkerCache

// Restore replays a stored snapshot into the active installation paths.
//
// The metadata file goes first: downstream tools read it to find headers
// and libraries, so it governs where the next consumer looks. The active
// header subtrees are then removed and replaced wholesale, while library
// binaries are merged into the active lib directory without touching
// unrelated files. Finishes with a linker cache refresh.
func (m *Manager) Restore(version string, paths ActivePaths) (*RestoreResult, error) {
	dir := m.Dir(version)
	if !m.Exists(version) {
		return nil, fmt.Errorf("no snapshot saved for version %s", version)
	}

	result := &RestoreResult{Version: version}

	storedPC, err := m.storedMetadataFile(version)
	if err != nil {
		return nil, err
	}
	if storedPC != "" {
		if paths.PCPath == "" {
			return nil, ErrPlaceholderMissing
		}
		if err := sysfs.CopyFile(storedPC, paths.PCPath); err != nil {
			return nil, fmt.Errorf("failed to restore metadata file: %w", err)
		}
		result.MetadataRestored = true
	}

	for _, sub := range headerSubdirs {
		stored := filepath.Join(dir, includeDirName, sub)
		if _, err := os.Stat(stored); err != nil {
			continue
		}
		active := filepath.Join(paths.IncludeDir, sub)
		if err := sysfs.RemoveTree(active); err != nil {
			return nil, err
		}
		if err := sysfs.CopyTree(stored, active); err != nil {
			return nil, fmt.Errorf("failed to restore header tree %s: %w", sub, err)
		}
	}

	n, err := sysfs.CopyGlob(filepath.Join(dir, libDirName), "*", paths.LibDir)
	if err != nil {
		return nil, fmt.Errorf("failed to restore libraries: %w", err)
	}
	result.LibFiles = n

	refreshLinkerCache()

	return result, nil
}

// storedMetadataFile returns the path of the snapshot's .pc file, or ""
// for a degraded snapshot that has none.
func (m *Manager) storedMetadataFile(version string) (string, error) {
	pcDir := filepath.Join(m.Dir(version), pcDirName)
	entries, err := os.ReadDir(pcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read snapshot metadata directory: %w", err)
	}

	for _, e := range entries {
		if !e.IsDir() {
			return filepath.Join(pcDir, e.Name()), nil
		}
	}
	return "", nil
}
