// Package version exposes build metadata of the openglyph-recipe binary.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds:
//
//	go build -ldflags "-X github.com/openeaw/openglyph-recipe/internal/version.Version=$(openglyph-recipe resolve)"
//
// Helper functions Short and Full render the version string for CLI output and logs.
package version
