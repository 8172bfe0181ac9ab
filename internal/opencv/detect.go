package opencv

import (
	"errors"
	"path/filepath"

	"github.com/blackwell-systems/cvswitch/internal/pkgconf"
)

// ErrNoInstallation reports that pkg-config knows no OpenCV package or
// that the install it points at carries no readable version header.
var ErrNoInstallation = errors.New("no OpenCV installation detected")

// pcPackages are the pkg-config package names probed, in order.
var pcPackages = []string{"opencv", "opencv4"}

// Installation is the live view of the currently active OpenCV install.
// It is recomputed on every query and never cached.
type Installation struct {
	Prefix     string
	IncludeDir string
	LibDir     string
	Version    string
}

// Detector derives the active Installation via pkg-config.
type Detector struct {
	Runner        pkgconf.Runner
	MaxComponents int
}

// Detect queries pkg-config for the active installation and names its
// version from the headers. Returns ErrNoInstallation when no probed
// package resolves to a prefix with a version header.
func (d *Detector) Detect() (*Installation, error) {
	max := d.MaxComponents
	if max <= 0 {
		max = DefaultMaxComponents
	}

	for _, pkg := range pcPackages {
		cflags, err := d.Runner.Cflags(pkg)
		if err != nil {
			continue
		}
		prefix := pkgconf.PrefixFromCflags(cflags)
		if prefix == "" {
			continue
		}

		version, err := VersionAt(prefix, max)
		if err != nil {
			return nil, err
		}
		if version == "" {
			continue
		}

		return &Installation{
			Prefix:     prefix,
			IncludeDir: filepath.Join(prefix, "include"),
			LibDir:     filepath.Join(prefix, "lib"),
			Version:    version,
		}, nil
	}

	return nil, ErrNoInstallation
}

// VersionAt names the version of the installation under prefix, or ""
// when no version header exists there.
func VersionAt(prefix string, maxComponents int) (string, error) {
	defs, err := ReadDefines(prefix)
	if err != nil {
		return "", err
	}
	if defs == nil {
		return "", nil
	}
	return Name(defs, maxComponents), nil
}
