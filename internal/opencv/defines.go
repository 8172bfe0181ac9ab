// Package opencv derives version identity for OpenCV installations from
// the version macros in their headers.
package opencv

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// versionHeaders are the header files that carry the version macros,
// relative to the install prefix. The first one that exists wins.
// 2.x/3.x/4.x keep them in opencv2/core/version.hpp; 1.x used cvver.h.
var versionHeaders = []string{
	"include/opencv2/core/version.hpp",
	"include/opencv/cvver.h",
}

// ParseDefines extracts simple "#define NAME value" lines into a map.
// Values are trimmed and stripped of surrounding double quotes, so
// `#define CV_VERSION_STATUS "-alpha"` yields "-alpha". Function-like and
// token-pasting macros are kept verbatim but are never consulted by the
// namer.
func ParseDefines(r io.Reader) (map[string]string, error) {
	defs := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#define") {
			continue
		}

		rest := strings.TrimSpace(strings.TrimPrefix(line, "#define"))
		name, value, found := strings.Cut(rest, " ")
		if !found {
			// Bare #define with no value, e.g. an include guard.
			defs[rest] = ""
			continue
		}

		value = strings.TrimSpace(value)
		if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
			value = value[1 : len(value)-1]
		}
		defs[name] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return defs, nil
}

// ReadDefines parses the defines of the version header under prefix.
// Returns nil (no error) when no version header exists; the caller treats
// that as "no installation".
func ReadDefines(prefix string) (map[string]string, error) {
	for _, rel := range versionHeaders {
		f, err := os.Open(filepath.Join(prefix, rel))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		defer f.Close()
		return ParseDefines(f)
	}
	return nil, nil
}
