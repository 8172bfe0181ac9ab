package opencv

import (
	"strings"
	"testing"
)

func TestNameEpochScheme(t *testing.T) {
	defs := map[string]string{
		keyEpoch:    "2",
		keyMajor:    "4",
		keyMinor:    "9",
		keyRevision: "0",
	}

	t.Run("FourComponents", func(t *testing.T) {
		if got := Name(defs, 4); got != "2.4.9.0" {
			t.Errorf("Expected 2.4.9.0, got %q", got)
		}
	})

	t.Run("ThreeComponents", func(t *testing.T) {
		if got := Name(defs, 3); got != "2.4.9" {
			t.Errorf("Expected 2.4.9, got %q", got)
		}
	})

	t.Run("TwoComponents", func(t *testing.T) {
		if got := Name(defs, 2); got != "2.4" {
			t.Errorf("Expected 2.4, got %q", got)
		}
	})

	t.Run("MissingRevision", func(t *testing.T) {
		partial := map[string]string{keyEpoch: "2", keyMajor: "4", keyMinor: "9"}
		if got := Name(partial, 4); got != "2.4.9" {
			t.Errorf("Expected 2.4.9, got %q", got)
		}
	})

	t.Run("StopsAtFirstEmptyComponent", func(t *testing.T) {
		partial := map[string]string{keyEpoch: "2", keyMinor: "9", keyRevision: "1"}
		// Major missing: emission stops after the epoch, and the revision
		// must not ride on a two-short version.
		if got := Name(partial, 4); got != "2" {
			t.Errorf("Expected 2, got %q", got)
		}
	})
}

func TestNameMajorScheme(t *testing.T) {
	defs := map[string]string{
		keyMajor:    "3",
		keyMinor:    "0",
		keyRevision: "0",
		keyStatus:   "-alpha",
	}

	t.Run("StatusAppendedBare", func(t *testing.T) {
		if got := Name(defs, 4); got != "3.0.0-alpha" {
			t.Errorf("Expected 3.0.0-alpha, got %q", got)
		}
	})

	t.Run("StatusDroppedAtThreeComponents", func(t *testing.T) {
		if got := Name(defs, 3); got != "3.0.0" {
			t.Errorf("Expected 3.0.0, got %q", got)
		}
	})

	t.Run("NoStatus", func(t *testing.T) {
		noStatus := map[string]string{keyMajor: "3", keyMinor: "1", keyRevision: "0"}
		if got := Name(noStatus, 4); got != "3.1.0" {
			t.Errorf("Expected 3.1.0, got %q", got)
		}
	})
}

func TestNameLegacyScheme(t *testing.T) {
	defs := map[string]string{
		keyOldMajor:    "1",
		keyOldMinor:    "0",
		keyOldSubminor: "0",
	}

	if got := Name(defs, 4); got != "1.0.0" {
		t.Errorf("Expected 1.0.0, got %q", got)
	}
}

func TestNameSchemePriority(t *testing.T) {
	// Epoch wins over the 3.x macros when both are present (2.4.x headers
	// define both sets).
	defs := map[string]string{
		keyEpoch:       "2",
		keyMajor:       "4",
		keyMinor:       "9",
		keyRevision:    "0",
		keyOldMajor:    "2",
		keyOldMinor:    "4",
		keyOldSubminor: "9",
	}

	if got := Name(defs, 4); got != "2.4.9.0" {
		t.Errorf("Expected epoch scheme 2.4.9.0, got %q", got)
	}
}

func TestNameNoScheme(t *testing.T) {
	t.Run("EmptyDefines", func(t *testing.T) {
		if got := Name(nil, 4); got != "" {
			t.Errorf("Expected empty string, got %q", got)
		}
	})

	t.Run("UnrelatedDefines", func(t *testing.T) {
		defs := map[string]string{"CV_PI": "3.1415926535897932384626433832795"}
		if got := Name(defs, 4); got != "" {
			t.Errorf("Expected empty string, got %q", got)
		}
	})
}

func TestParseDefines(t *testing.T) {
	header := `
// version header
#ifndef OPENCV_VERSION_HPP
#define OPENCV_VERSION_HPP

#define CV_VERSION_MAJOR    3
#define CV_VERSION_MINOR    0
#define CV_VERSION_REVISION 0
#define CV_VERSION_STATUS   "-alpha"

#define CV_VERSION CVAUX_STR(CV_VERSION_MAJOR) "." CVAUX_STR(CV_VERSION_MINOR)
#endif
`

	defs, err := ParseDefines(strings.NewReader(header))
	if err != nil {
		t.Fatalf("ParseDefines failed: %v", err)
	}

	if defs["CV_VERSION_MAJOR"] != "3" {
		t.Errorf("Expected major 3, got %q", defs["CV_VERSION_MAJOR"])
	}
	if defs["CV_VERSION_STATUS"] != "-alpha" {
		t.Errorf("Expected status -alpha with quotes stripped, got %q", defs["CV_VERSION_STATUS"])
	}
	if _, ok := defs["OPENCV_VERSION_HPP"]; !ok {
		t.Error("Expected bare include guard to be recorded")
	}
	if got := Name(defs, 4); got != "3.0.0-alpha" {
		t.Errorf("Expected parsed header to name 3.0.0-alpha, got %q", got)
	}
}
