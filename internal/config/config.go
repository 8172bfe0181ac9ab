// Package config builds the cvswitch runtime configuration from the
// environment exactly once at startup. Components receive a *Config rather
// than reading environment variables themselves.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// storeDirName is the fixed subdirectory under $HOME that holds one
	// directory per saved version plus the index database.
	storeDirName = ".cvswitch"

	// DefaultPCDir is the fixed fallback pkg-config directory used when
	// PKG_CONFIG_PATH is unset or exhausted without a match.
	DefaultPCDir = "/usr/local/lib/pkgconfig"

	// DefaultPrefix is where restores land when no active installation
	// can be detected.
	DefaultPrefix = "/usr/local"
)

// Config carries every path and environment value the tool consumes.
type Config struct {
	// StoreRoot is the snapshot storage root, one subdirectory per version.
	StoreRoot string

	// DBPath is the sqlite index next to the snapshot directories.
	DBPath string

	// PkgConfigPath is the raw colon-separated PKG_CONFIG_PATH value,
	// possibly empty (sudo strips it unless explicitly forwarded).
	PkgConfigPath string

	// PIDFile and LogFile locate the watch daemon's runtime files.
	PIDFile string
	LogFile string
}

// Load constructs the Config from the current environment, creating the
// storage root if it does not exist yet.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	root := filepath.Join(home, storeDirName)
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	return &Config{
		StoreRoot:     root,
		DBPath:        filepath.Join(root, "cvswitch.db"),
		PkgConfigPath: os.Getenv("PKG_CONFIG_PATH"),
		PIDFile:       filepath.Join(root, "watch.pid"),
		LogFile:       filepath.Join(root, "watch.log"),
	}, nil
}

// ForRoot returns a Config rooted at an explicit directory. Used by tests
// and by the --store flag.
func ForRoot(root, pkgConfigPath string) *Config {
	return &Config{
		StoreRoot:     root,
		DBPath:        filepath.Join(root, "cvswitch.db"),
		PkgConfigPath: pkgConfigPath,
		PIDFile:       filepath.Join(root, "watch.pid"),
		LogFile:       filepath.Join(root, "watch.log"),
	}
}
