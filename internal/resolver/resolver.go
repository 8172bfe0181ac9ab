// Package resolver matches a user-typed version clue against the saved
// version strings.
package resolver

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoMatch reports that no saved version starts with the clue.
var ErrNoMatch = errors.New("no saved version matches")

// AmbiguousError reports a clue that prefixes more than one saved version.
// Candidates holds every match so the user can pick one and re-invoke with
// a longer clue.
type AmbiguousError struct {
	Clue       string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("version clue %q is ambiguous: matches %s", e.Clue, strings.Join(e.Candidates, ", "))
}

// Resolve matches clue against versions as a literal prefix, not a
// pattern, and deliberately not edit-distance. An exact match wins
// immediately even when the clue also prefixes longer versions, so a saved
// "2.4" resolves over "2.4.9.0" and "2.4.9.1".
func Resolve(clue string, versions []string) (string, error) {
	if clue == "" {
		return "", fmt.Errorf("%w: empty clue", ErrNoMatch)
	}

	var candidates []string
	for _, v := range versions {
		if v == clue {
			return v, nil
		}
		if strings.HasPrefix(v, clue) {
			candidates = append(candidates, v)
		}
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrNoMatch, clue)
	case 1:
		return candidates[0], nil
	default:
		sort.Strings(candidates)
		return "", &AmbiguousError{Clue: clue, Candidates: candidates}
	}
}
