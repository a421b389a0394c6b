package resolver

import (
	"context"
	"regexp"
	"strings"

	"github.com/openeaw/openglyph-recipe/internal/domain/release"
	"github.com/openeaw/openglyph-recipe/internal/logger"
	"github.com/openeaw/openglyph-recipe/internal/vcs"
)

// tagPattern is anchored at the start only; text after the patch number is ignored.
var tagPattern = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)`)

// Options tunes Resolve.
type Options struct {
	// ShortHashLength is the number of hash characters kept; zero means release.ShortHashLength.
	ShortHashLength int
}

// Resolve queries q and returns "<major>.<minor>.<patch>[+<commit>[.dirty]]".
// It never fails: every query error narrows the result instead.
func Resolve(ctx context.Context, q vcs.Querier, opts Options) string {
	ctx = logger.WithName(ctx, "resolver")

	version := versionFromTag(ctx, q)

	suffix, ok := revisionSuffix(ctx, q, opts.ShortHashLength)
	if !ok {
		return version
	}

	return version + suffix
}

// versionFromTag returns the numeric version of the nearest tag or release.FallbackCore.
func versionFromTag(ctx context.Context, q vcs.Querier) string {
	tag, err := q.DescribeTags(ctx)
	if err != nil {
		logger.DebugKV(ctx, "No usable tag, falling back", "version", release.FallbackCore, "error", err)
		return release.FallbackCore
	}

	tag = strings.TrimSpace(tag)

	m := tagPattern.FindStringSubmatch(tag)
	if m == nil {
		logger.DebugKV(ctx, "Tag is not a version, falling back", "tag", tag, "version", release.FallbackCore)
		return release.FallbackCore
	}

	return strings.Join(m[1:], ".")
}

// revisionSuffix returns "+<commit>[.dirty]". Both the hash and the
// cleanliness queries must succeed, otherwise ok is false.
func revisionSuffix(ctx context.Context, q vcs.Querier, hashLength int) (string, bool) {
	hash, err := q.RevisionHash(ctx)
	if err != nil {
		logger.DebugKV(ctx, "Revision unavailable, omitting commit suffix", "error", err)
		return "", false
	}

	clean, err := q.IsWorkingTreeClean(ctx)
	if err != nil {
		logger.DebugKV(ctx, "Working tree status unavailable, omitting commit suffix", "error", err)
		return "", false
	}

	suffix := "+" + release.ShortHash(hash, hashLength)
	if !clean {
		suffix += ".dirty"
	}

	return suffix, true
}
