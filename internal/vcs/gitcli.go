package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// defaultGitExecutable is looked up in PATH.
const defaultGitExecutable = "git"

// GitCLI queries a repository by running the git executable.
type GitCLI struct {
	// folder is the working directory of every git command.
	folder string
	// executable is the git binary to run.
	executable string
	// timeout bounds a single command.
	timeout time.Duration
}

// GitOption configures GitCLI.
type GitOption func(*GitCLI)

// WithTimeout sets the per-command timeout.
func WithTimeout(timeout time.Duration) GitOption {
	return func(g *GitCLI) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

// WithExecutable sets the git binary.
func WithExecutable(executable string) GitOption {
	return func(g *GitCLI) {
		if executable != "" {
			g.executable = executable
		}
	}
}

// NewGitCLI creates a GitCLI rooted at folder. An empty folder means the
// current working directory.
func NewGitCLI(folder string, opts ...GitOption) *GitCLI {
	if folder != "" {
		folder = filepath.Clean(folder)
	}

	g := &GitCLI{
		folder:     folder,
		executable: defaultGitExecutable,
		timeout:    DefaultTimeout,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// DescribeTags runs `git describe --tags --abbrev=0`.
// The output is returned as printed, trailing newline included.
func (g *GitCLI) DescribeTags(ctx context.Context) (string, error) {
	return g.run(ctx, "describe", "--tags", "--abbrev=0")
}

// RevisionHash runs `git rev-parse HEAD`.
func (g *GitCLI) RevisionHash(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "--verify", "HEAD")
	if err != nil {
		return "", err
	}

	hash := strings.TrimSpace(out)
	if !isHex(hash) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRevision, hash)
	}

	return hash, nil
}

// IsWorkingTreeClean runs `git status --porcelain`. Untracked files count
// as modifications.
func (g *GitCLI) IsWorkingTreeClean(ctx context.Context) (bool, error) {
	out, err := g.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}

	return porcelainIsClean(out), nil
}

// run executes git with args and returns its stdout.
func (g *GitCLI) run(ctx context.Context, args ...string) (string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, g.executable, args...)
	cmd.Dir = g.folder

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", args[0], err)
		}

		return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
	}

	return string(out), nil
}

// porcelainIsClean reports whether `git status --porcelain` printed no entries.
func porcelainIsClean(out string) bool {
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}

	return true
}
