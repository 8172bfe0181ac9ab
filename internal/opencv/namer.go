package opencv

import "strings"

// Macro names for the three version schemes OpenCV has used over its life.
const (
	keyEpoch    = "CV_VERSION_EPOCH" // 2.4.x: epoch.major.minor.revision
	keyMajor    = "CV_VERSION_MAJOR" // 3.x+: major.minor.revision[status]
	keyMinor    = "CV_VERSION_MINOR"
	keyRevision = "CV_VERSION_REVISION"
	keyStatus   = "CV_VERSION_STATUS" // e.g. "-alpha", leading dash included

	keyOldMajor    = "CV_MAJOR_VERSION" // 1.x/2.0-2.3: major.minor.subminor
	keyOldMinor    = "CV_MINOR_VERSION"
	keyOldSubminor = "CV_SUBMINOR_VERSION"
)

// epochRevisionSep joins the revision onto an epoch-scheme version. OpenCV
// builds CV_VERSION with a plain dot here, but the separator is a property
// of the library, not of version strings in general.
const epochRevisionSep = "."

// DefaultMaxComponents is the component cap used when callers have no
// reason to truncate.
const DefaultMaxComponents = 4

// Name derives the dotted version string from header defines, emitting at
// most maxComponents components. The scheme is picked by which macros are
// present: epoch first, then the 3.x major macro, then the legacy macros.
// Components are consumed in scheme order and emission stops at the first
// empty one. Returns "" when no scheme resolves, which callers read as
// "no installation found".
func Name(defs map[string]string, maxComponents int) string {
	if maxComponents <= 0 {
		maxComponents = DefaultMaxComponents
	}
	if len(defs) == 0 {
		return ""
	}

	if defs[keyEpoch] != "" {
		v := joinDotted(maxComponents, defs[keyEpoch], defs[keyMajor], defs[keyMinor])
		// The revision rides behind its own separator rather than being a
		// plain fourth dotted component.
		if countComponents(v) == 3 && maxComponents > 3 && defs[keyRevision] != "" {
			v += epochRevisionSep + defs[keyRevision]
		}
		return v
	}

	if defs[keyMajor] != "" {
		v := joinDotted(maxComponents, defs[keyMajor], defs[keyMinor], defs[keyRevision])
		// The status suffix ("-alpha", "-rc1") carries its own punctuation.
		if countComponents(v) == 3 && maxComponents > 3 && defs[keyStatus] != "" {
			v += defs[keyStatus]
		}
		return v
	}

	if defs[keyOldMajor] != "" {
		return joinDotted(maxComponents, defs[keyOldMajor], defs[keyOldMinor], defs[keyOldSubminor])
	}

	return ""
}

// joinDotted joins values with dots, stopping at the first empty value or
// at max components, whichever comes first.
func joinDotted(max int, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || len(parts) >= max {
			break
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, ".")
}

func countComponents(v string) int {
	if v == "" {
		return 0
	}
	return strings.Count(v, ".") + 1
}
