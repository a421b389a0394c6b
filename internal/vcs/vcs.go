package vcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Querier is the read-only view of a repository used by the resolver.
type Querier interface {
	// DescribeTags returns the most recent tag reachable from HEAD, without a commit-count suffix.
	DescribeTags(ctx context.Context) (string, error)
	// RevisionHash returns the full hexadecimal hash of HEAD.
	RevisionHash(ctx context.Context) (string, error)
	// IsWorkingTreeClean reports whether the working tree has no uncommitted modifications.
	IsWorkingTreeClean(ctx context.Context) (bool, error)
}

// Backend names a Querier implementation.
type Backend string

const (
	// BackendGit runs the git executable.
	BackendGit Backend = "git"
	// BackendGoGit reads the repository in process.
	BackendGoGit Backend = "go-git"
	// BackendNone never has version control metadata.
	BackendNone Backend = "none"

	// DefaultTimeout bounds a single git command.
	DefaultTimeout = 10 * time.Second
)

var (
	// ErrUnavailable is returned by every query of the None backend.
	ErrUnavailable = errors.New("version control metadata is unavailable")
	// ErrNoTags is returned when no tag is reachable from HEAD.
	ErrNoTags = errors.New("no tags reachable from HEAD")
	// ErrInvalidRevision is returned when HEAD does not resolve to a hexadecimal hash.
	ErrInvalidRevision = errors.New("invalid revision hash")
	// ErrUnknownBackend is returned for backend names ParseBackend does not know.
	ErrUnknownBackend = errors.New("unknown vcs backend")
)

// Backends lists the supported backend names.
func Backends() []Backend {
	return []Backend{BackendGit, BackendGoGit, BackendNone}
}

// ParseBackend converts a backend name to a Backend.
// An empty name selects BackendGit.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendGit:
		return BackendGit, nil
	case BackendGoGit, "gogit":
		return BackendGoGit, nil
	case BackendNone:
		return BackendNone, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Options configures Open.
type Options struct {
	// Folder is the directory inside the repository to query.
	Folder string
	// Timeout bounds each git command of the GitCLI backend.
	Timeout time.Duration
	// GitExecutable overrides the git binary used by the GitCLI backend.
	GitExecutable string
}

// Open returns the Querier for backend. Opening never touches the
// repository, so a missing repository surfaces as query failures later.
//
//nolint:ireturn // Callers pick the backend at runtime.
func Open(backend Backend, opts Options) (Querier, error) {
	switch backend {
	case BackendGit:
		gitOpts := []GitOption{WithTimeout(opts.Timeout)}
		if opts.GitExecutable != "" {
			gitOpts = append(gitOpts, WithExecutable(opts.GitExecutable))
		}

		return NewGitCLI(opts.Folder, gitOpts...), nil
	case BackendGoGit:
		return NewGoGit(opts.Folder), nil
	case BackendNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// isHex reports whether s is a non-empty hexadecimal string.
func isHex(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}

	return true
}
