package pkgconf

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// pcNames are the metadata filenames probed in each candidate directory,
// in order. OpenCV 2.x/3.x installs opencv.pc, 4.x installs opencv4.pc.
var pcNames = []string{"opencv.pc", "opencv4.pc"}

// Status classifies how a Location was found.
type Status int

const (
	// StatusExact means the .pc file's Version field equals the expected
	// version string.
	StatusExact Status = iota

	// StatusBestGuess means a .pc file was found but its version was not
	// verified against the expected one. Usable as a placeholder for a
	// future save; callers must not treat it as confirmed.
	StatusBestGuess
)

// Location is a resolved metadata file.
type Location struct {
	Dir    string
	File   string
	Status Status
}

var (
	// ErrSearchPathUnset reports that PKG_CONFIG_PATH is empty and the
	// default location holds no metadata file. This usually means sudo
	// stripped the variable; callers emit remediation guidance.
	ErrSearchPathUnset = errors.New("PKG_CONFIG_PATH is not set and no metadata file exists at the default location")

	// ErrNotFound reports that no candidate directory contained a
	// metadata file at all.
	ErrNotFound = errors.New("no pkg-config metadata file found in any search path directory")
)

// Locator finds the .pc file describing an installation.
type Locator struct {
	// SearchPath is the raw colon-separated PKG_CONFIG_PATH value.
	SearchPath string

	// DefaultDir is the fixed fallback directory consulted when the
	// search path is unset or exhausted without an exact match.
	DefaultDir string
}

// Locate scans the search path for a metadata file declaring expected.
//
// The first candidate whose Version field matches exactly wins. With no
// exact match the default directory is consulted, then the last candidate
// that contained any metadata file is returned as a best guess. An empty
// search path short-circuits to the default directory or
// ErrSearchPathUnset.
func (l *Locator) Locate(expected string) (*Location, error) {
	if l.SearchPath == "" {
		if loc := l.probe(l.DefaultDir, expected); loc != nil {
			return loc, nil
		}
		return nil, ErrSearchPathUnset
	}

	var lastWithPC *Location
	for _, dir := range strings.Split(l.SearchPath, ":") {
		if dir == "" {
			continue
		}
		loc := l.probe(dir, expected)
		if loc == nil {
			continue
		}
		if loc.Status == StatusExact {
			return loc, nil
		}
		lastWithPC = loc
	}

	if loc := l.probe(l.DefaultDir, expected); loc != nil {
		return loc, nil
	}

	if lastWithPC != nil {
		return lastWithPC, nil
	}
	return nil, ErrNotFound
}

// probe returns the Location for dir if it contains a metadata file,
// classifying it exact or best-guess against expected. Nil when dir holds
// no metadata file.
func (l *Locator) probe(dir, expected string) *Location {
	file := findPC(dir)
	if file == "" {
		return nil
	}

	loc := &Location{Dir: dir, File: file, Status: StatusBestGuess}
	if v, err := PCVersion(file); err == nil && expected != "" && v == expected {
		loc.Status = StatusExact
	}
	return loc
}

// findPC returns the path of the first known metadata filename present in
// dir, or "".
func findPC(dir string) string {
	for _, name := range pcNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// PCVersion parses the Version field out of a .pc file. Trailing
// whitespace on the value is tolerated.
func PCVersion(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "Version:") {
			continue
		}
		return strings.TrimSpace(strings.TrimPrefix(line, "Version:")), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", errors.New("no Version field in " + path)
}
