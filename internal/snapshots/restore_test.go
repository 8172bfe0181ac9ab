package snapshots

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func stubLinkerCache(t *testing.T) *int {
	t.Helper()
	calls := 0
	orig := refreshLinkerCache
	refreshLinkerCache = func() { calls++ }
	t.Cleanup(func() { refreshLinkerCache = orig })
	return &calls
}

// Restores write into the paths of the installation being displaced,
// even when the restored .pc declares a different prefix. Longstanding
// behavior; a prefix-declared target would move files somewhere nothing
// else on the system expects.
func TestRestoreRoundTrip(t *testing.T) {
	calls := stubLinkerCache(t)

	fix := newInstallFixture(t, "2.4.9.0", true)
	m := New(t.TempDir(), nil, fix.locator(t))
	if _, err := m.Create(fix.inst, "test"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Another version takes over the same prefix. Unlink before rewriting:
	// installers replace files, they do not truncate in place, and the
	// snapshot may share inodes with the live tree.
	headerDir := filepath.Join(fix.inst.IncludeDir, "opencv2", "core")
	os.Remove(filepath.Join(headerDir, "core.hpp"))
	if err := os.WriteFile(filepath.Join(headerDir, "core.hpp"), []byte("// core for 3.0.0\n"), 0644); err != nil {
		t.Fatalf("Failed to overwrite header: %v", err)
	}
	if err := os.WriteFile(filepath.Join(headerDir, "ocl.hpp"), []byte("// new in 3.x\n"), 0644); err != nil {
		t.Fatalf("Failed to write new header: %v", err)
	}
	pcPath := filepath.Join(fix.pcDir, "opencv.pc")
	os.Remove(pcPath)
	if err := os.WriteFile(pcPath, []byte("Name: OpenCV\nVersion: 3.0.0\n"), 0644); err != nil {
		t.Fatalf("Failed to overwrite pc file: %v", err)
	}

	result, err := m.Restore("2.4.9.0", ActivePaths{
		IncludeDir: fix.inst.IncludeDir,
		LibDir:     fix.inst.LibDir,
		PCPath:     pcPath,
	})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if !result.MetadataRestored {
		t.Error("Expected metadata to be restored")
	}
	if result.LibFiles != 2 {
		t.Errorf("Expected 2 library files restored, got %d", result.LibFiles)
	}
	if *calls != 1 {
		t.Errorf("Expected one linker cache refresh, got %d", *calls)
	}

	// Byte-for-byte round trip of everything captured.
	core, err := os.ReadFile(filepath.Join(headerDir, "core.hpp"))
	if err != nil {
		t.Fatalf("Failed to read restored header: %v", err)
	}
	if string(core) != "// core for 2.4.9.0\n" {
		t.Errorf("Header content not restored: %q", core)
	}
	pc, err := os.ReadFile(pcPath)
	if err != nil {
		t.Fatalf("Failed to read restored pc file: %v", err)
	}
	if string(pc) != "Name: OpenCV\nVersion: 2.4.9.0\n" {
		t.Errorf("Metadata content not restored: %q", pc)
	}

	// Header subtree replacement is wholesale: the 3.x-only file is gone.
	if _, err := os.Stat(filepath.Join(headerDir, "ocl.hpp")); !os.IsNotExist(err) {
		t.Error("Expected foreign header to be removed by subtree replacement")
	}

	lib, err := os.ReadFile(filepath.Join(fix.inst.LibDir, "libopencv_core.so.2.4.9.0"))
	if err != nil {
		t.Fatalf("Failed to read restored library: %v", err)
	}
	if string(lib) != "elf-2.4.9.0" {
		t.Errorf("Library content not restored: %q", lib)
	}
}

func TestRestoreMergesLibraries(t *testing.T) {
	stubLinkerCache(t)

	fix := newInstallFixture(t, "2.4.9.0", true)
	m := New(t.TempDir(), nil, fix.locator(t))
	if _, err := m.Create(fix.inst, "test"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The displaced version's library stays behind after restore; only
	// the captured files are merged in on top.
	foreign := filepath.Join(fix.inst.LibDir, "libopencv_ocl.so.3.0.0")
	if err := os.WriteFile(foreign, []byte("elf-3.0.0"), 0644); err != nil {
		t.Fatalf("Failed to write foreign library: %v", err)
	}

	pcPath := filepath.Join(fix.pcDir, "opencv.pc")
	if _, err := m.Restore("2.4.9.0", ActivePaths{
		IncludeDir: fix.inst.IncludeDir,
		LibDir:     fix.inst.LibDir,
		PCPath:     pcPath,
	}); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if _, err := os.Stat(foreign); err != nil {
		t.Errorf("Merge must not remove unmanaged libraries: %v", err)
	}
	png, err := os.ReadFile(filepath.Join(fix.inst.LibDir, "libpng.so.16"))
	if err != nil || string(png) != "png" {
		t.Errorf("Unrelated library touched: %q, %v", png, err)
	}
}

func TestRestoreUnknownVersion(t *testing.T) {
	m := New(t.TempDir(), nil, nil)
	if _, err := m.Restore("9.9.9", ActivePaths{}); err == nil {
		t.Error("Expected error restoring a version that was never saved")
	}
}

func TestRestorePlaceholderMissing(t *testing.T) {
	stubLinkerCache(t)

	fix := newInstallFixture(t, "2.4.9.0", true)
	m := New(t.TempDir(), nil, fix.locator(t))
	if _, err := m.Create(fix.inst, "test"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Snapshot carries a .pc but there is no active location to put it.
	_, err := m.Restore("2.4.9.0", ActivePaths{
		IncludeDir: fix.inst.IncludeDir,
		LibDir:     fix.inst.LibDir,
		PCPath:     "",
	})
	if !errors.Is(err, ErrPlaceholderMissing) {
		t.Errorf("Expected ErrPlaceholderMissing, got %v", err)
	}
}

func TestRestoreDegradedSnapshot(t *testing.T) {
	stubLinkerCache(t)

	fix := newInstallFixture(t, "2.4.9.0", false)
	m := New(t.TempDir(), nil, fix.locator(t))
	if _, err := m.Create(fix.inst, "test"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// No stored .pc: headers and libraries come back, metadata is skipped
	// even without an active .pc location.
	result, err := m.Restore("2.4.9.0", ActivePaths{
		IncludeDir: fix.inst.IncludeDir,
		LibDir:     fix.inst.LibDir,
		PCPath:     "",
	})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if result.MetadataRestored {
		t.Error("Degraded snapshot must not report metadata restored")
	}
	if result.LibFiles != 2 {
		t.Errorf("Expected 2 library files restored, got %d", result.LibFiles)
	}
}
