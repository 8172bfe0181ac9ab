// Package snapshots stores and replays OpenCV installations. Each saved
// version is one directory under the storage root holding the header
// tree, the library binaries, and the pkg-config metadata file.
package snapshots

import (
	"path/filepath"

	"github.com/blackwell-systems/cvswitch/internal/pkgconf"
	"github.com/blackwell-systems/cvswitch/internal/store"
)

// Fixed subdirectory names inside every snapshot directory.
const (
	includeDirName = "include"
	libDirName     = "lib"
	pcDirName      = "pkgconfig"
)

// headerSubdirs are the include-tree subdirectories snapshotted and
// replaced on restore. Everything else under include/ is left alone.
var headerSubdirs = []string{"opencv", "opencv2", "opencv4"}

// libPatterns match the library binaries belonging to an OpenCV install:
// modular 2.x+ names plus the monolithic 1.x set, shared objects with and
// without version suffixes, and static archives.
var libPatterns = []string{
	"libopencv_*.so*",
	"libopencv_*.a",
	"libcv.so*",
	"libcvaux.so*",
	"libcxcore.so*",
	"libhighgui.so*",
	"libml.so*",
}

// Manager is the snapshot store: a directory-keyed map from version
// string to saved artifact bundle.
type Manager struct {
	root    string
	store   *store.Store // optional index; nil disables journaling
	locator *pkgconf.Locator
}

// New creates a Manager over the given storage root. st may be nil when
// no index database is wanted (tests mostly run without one).
func New(root string, st *store.Store, locator *pkgconf.Locator) *Manager {
	return &Manager{
		root:    root,
		store:   st,
		locator: locator,
	}
}

// Dir returns the snapshot directory for a version.
func (m *Manager) Dir(version string) string {
	return filepath.Join(m.root, version)
}

// ActivePaths names the live installation locations a restore writes to.
// They are derived from the pre-switch active prefix.
type ActivePaths struct {
	IncludeDir string
	LibDir     string

	// PCPath is the active metadata file location the stored .pc is
	// copied over. Empty when no location could be determined.
	PCPath string
}

// CreateResult reports what a save captured.
type CreateResult struct {
	Version  string
	LibFiles int

	// Degraded is set when the metadata file could not be located; the
	// snapshot holds headers and libraries only.
	Degraded bool

	// PCSource is the metadata file copied in, when one was found.
	PCSource string
}

// RestoreResult reports what a restore replayed.
type RestoreResult struct {
	Version          string
	LibFiles         int
	MetadataRestored bool
}
