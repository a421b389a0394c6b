package release

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// ShortHashLength is the number of commit hash characters kept in the version string.
	ShortHashLength = 12

	// FallbackCore is the numeric version used when no usable tag exists.
	FallbackCore = "0.0.0"

	// dirtySuffix marks a build made from a working tree with uncommitted changes.
	dirtySuffix = ".dirty"
)

// normalizedPattern must match the whole input.
var normalizedPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)\+([a-fA-F0-9]+)(\.dirty)?$`)

// Version is a decoded normalized version string.
type Version struct {
	// Major, Minor and Patch come from the nearest version tag.
	Major uint64
	Minor uint64
	Patch uint64
	// Commit is the shortened revision hash.
	Commit string
	// IsClean is false when the working tree had uncommitted changes.
	IsClean bool
}

// Core returns "<major>.<minor>.<patch>".
func (v Version) Core() string {
	var b strings.Builder

	b.WriteString(strconv.FormatUint(v.Major, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.Minor, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.Patch, 10))

	return b.String()
}

// String renders the normalized form. A version without a commit renders
// as the bare core, the same shape the resolver produces when the revision
// cannot be queried.
func (v Version) String() string {
	if v.Commit == "" {
		return v.Core()
	}

	s := v.Core() + "+" + v.Commit
	if !v.IsClean {
		s += dirtySuffix
	}

	return s
}

// Decode parses a normalized version string.
// The second result is false when s is not in normalized form, which
// includes the bare "<major>.<minor>.<patch>" fallback strings.
func Decode(s string) (Version, bool) {
	m := normalizedPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, false
	}

	var (
		parts [3]uint64
		err   error
	)

	for i := range parts {
		parts[i], err = strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return Version{}, false
		}
	}

	return Version{
		Major:   parts[0],
		Minor:   parts[1],
		Patch:   parts[2],
		Commit:  m[4],
		IsClean: m[5] == "",
	}, true
}

// ShortHash truncates hash to at most n characters.
// Non-positive n falls back to ShortHashLength.
func ShortHash(hash string, n int) string {
	if n <= 0 {
		n = ShortHashLength
	}

	if len(hash) <= n {
		return hash
	}

	return hash[:n]
}
