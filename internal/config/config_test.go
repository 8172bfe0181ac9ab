package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PKG_CONFIG_PATH", "/opt/lib/pkgconfig:/usr/lib/pkgconfig")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	wantRoot := filepath.Join(home, ".cvswitch")
	if cfg.StoreRoot != wantRoot {
		t.Errorf("Expected store root %s, got %s", wantRoot, cfg.StoreRoot)
	}
	if cfg.DBPath != filepath.Join(wantRoot, "cvswitch.db") {
		t.Errorf("Unexpected db path %s", cfg.DBPath)
	}
	if cfg.PkgConfigPath != "/opt/lib/pkgconfig:/usr/lib/pkgconfig" {
		t.Errorf("Unexpected pkg-config path %q", cfg.PkgConfigPath)
	}

	// The storage root is created on load.
	info, err := os.Stat(wantRoot)
	if err != nil {
		t.Fatalf("Expected storage root to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("Storage root is not a directory")
	}
}

func TestLoadEmptyPkgConfigPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PKG_CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PkgConfigPath != "" {
		t.Errorf("Expected empty pkg-config path, got %q", cfg.PkgConfigPath)
	}
}

func TestForRoot(t *testing.T) {
	cfg := ForRoot("/tmp/custom-store", "/opt/lib/pkgconfig")

	if cfg.StoreRoot != "/tmp/custom-store" {
		t.Errorf("Unexpected store root %s", cfg.StoreRoot)
	}
	if cfg.DBPath != "/tmp/custom-store/cvswitch.db" {
		t.Errorf("Unexpected db path %s", cfg.DBPath)
	}
	if cfg.PIDFile != "/tmp/custom-store/watch.pid" {
		t.Errorf("Unexpected pid file %s", cfg.PIDFile)
	}
	if cfg.PkgConfigPath != "/opt/lib/pkgconfig" {
		t.Errorf("Unexpected pkg-config path %q", cfg.PkgConfigPath)
	}
}
