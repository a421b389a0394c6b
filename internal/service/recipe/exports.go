package recipe

import (
	"context"
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/openeaw/openglyph-recipe/internal/logger"

	// Ensure SHA512 available for checksum calculation.
	_ "crypto/sha512"
)

// checksumFunction hashes exported sources.
const checksumFunction = crypto.SHA512

var errHashUnavailable = errors.New("hash function unavailable")

// collectExports walks root and returns the base64 checksum of every file
// matching one of patterns, keyed by slash-separated path relative to root.
func collectExports(ctx context.Context, root string, patterns []string) (map[string]string, error) {
	files := make(map[string]string)

	if len(patterns) == 0 {
		return files, nil
	}

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if entry.IsDir() {
			if entry.Name() == ".git" {
				return filepath.SkipDir
			}

			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)
		if !matchesAny(patterns, rel) {
			return nil
		}

		checksum, err := fileChecksum(p)
		if err != nil {
			return err
		}

		files[rel] = base64.StdEncoding.EncodeToString(checksum)

		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		logger.WarnKV(ctx, "Recipe folder does not exist, no sources exported", "folder", root)
		return files, nil
	}

	if err != nil {
		return nil, err
	}

	return files, nil
}

// matchesAny reports whether rel matches one of patterns. A pattern ending
// in "/*" also matches everything below that directory.
func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimPrefix(pattern, "./"))

		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}

		if dir, found := strings.CutSuffix(pattern, "/*"); found && strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}

	return false
}

// fileChecksum returns the checksum bytes of a file.
func fileChecksum(p string) ([]byte, error) {
	contents, err := os.ReadFile(filepath.Clean(p))
	if err != nil {
		return nil, err
	}

	if !checksumFunction.Available() {
		return nil, fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	hasher := checksumFunction.New()
	if _, err = hasher.Write(contents); err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	return hasher.Sum(nil), nil
}
