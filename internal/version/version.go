package version

import (
	"fmt"

	"github.com/openeaw/openglyph-recipe/internal/domain/release"
)

var (
	// Version is the version of the build. It can be overridden via ldflags,
	// usually with the output of `openglyph-recipe resolve`.
	Version = release.FallbackCore
	// Commit is the short git SHA embedded at build time (or "none").
	// A normalized Version carries its own commit, which takes precedence.
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	v, ok := release.Decode(Version)
	if !ok {
		return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
	}

	tree := "clean"
	if !v.IsClean {
		tree = "dirty"
	}

	return fmt.Sprintf("version: %s, commit: %s, tree: %s, built at: %s", v.Core(), v.Commit, tree, BuildTime)
}
