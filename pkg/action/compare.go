package action

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-version"
)

// ErrNoVersion is returned when the latest version has no numeric part,
// e.g. when a repository has no release and its default branch is used instead.
var ErrNoVersion = errors.New("the latest version has no numeric prefix")

var numericPrefixPattern = regexp.MustCompile(`^v?(\d+(?:\.\d+){0,2})`)

// NumericPrefix returns the leading major[.minor[.patch]] of v without the v prefix.
// It returns an empty string if v doesn't start with a number.
func NumericPrefix(v string) string {
	m := numericPrefixPattern.FindStringSubmatch(v)
	if m == nil {
		return ""
	}
	return m[1]
}

// Major returns the major version of v.
func Major(v string) (int, bool) {
	if sv, err := version.NewVersion(v); err == nil {
		return sv.Segments()[0], true
	}
	prefix := NumericPrefix(v)
	if prefix == "" {
		return 0, false
	}
	m, _, _ := strings.Cut(prefix, ".")
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MajorOutdated reports whether a major-only pin differs from the latest major version.
// Minor and patch drift within the same major is ignored.
func MajorOutdated(current, latest string) (bool, error) {
	lm, ok := Major(latest)
	if !ok {
		return false, ErrNoVersion
	}
	cm, ok := Major(current)
	if !ok {
		return false, errors.New("the current version isn't a major version")
	}
	return cm != lm, nil
}

// SemverOutdated reports whether the numeric prefixes of current and latest differ.
// The check is textual: it never reports a downgrade separately, only a difference.
func SemverOutdated(current, latest string) (bool, error) {
	lp := NumericPrefix(latest)
	if lp == "" {
		return false, ErrNoVersion
	}
	return NumericPrefix(current) != lp, nil
}

// SHAOutdated reports whether the target is ahead of the pinned commit.
func SHAOutdated(aheadBy int) bool {
	return aheadBy > 0
}
