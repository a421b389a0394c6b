package vcs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// testRepository is a throwaway repository built with go-git in a temp dir.
type testRepository struct {
	dir  string
	repo *git.Repository
	// clock advances by a minute per commit so history order is stable.
	clock time.Time
}

// newTestRepository initializes an empty repository.
func newTestRepository(t *testing.T) *testRepository {
	t.Helper()

	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	return &testRepository{
		dir:   dir,
		repo:  repo,
		clock: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

// signature returns the author used for commits and annotated tags.
func (r *testRepository) signature() *object.Signature {
	return &object.Signature{
		Name:  "OpenGlyph Builder",
		Email: "builder@openglyph.invalid",
		When:  r.clock,
	}
}

// writeFile creates or replaces a file in the worktree.
func (r *testRepository) writeFile(t *testing.T, name, contents string) {
	t.Helper()

	path := filepath.Join(r.dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
}

// commit writes a file, stages it and commits.
func (r *testRepository) commit(t *testing.T, name, contents string) plumbing.Hash {
	t.Helper()

	r.writeFile(t, name, contents)

	worktree, err := r.repo.Worktree()
	require.NoError(t, err)

	_, err = worktree.Add(name)
	require.NoError(t, err)

	r.clock = r.clock.Add(time.Minute)

	hash, err := worktree.Commit("update "+name, &git.CommitOptions{Author: r.signature()})
	require.NoError(t, err)

	return hash
}

// lightweightTag points name at hash.
func (r *testRepository) lightweightTag(t *testing.T, name string, hash plumbing.Hash) {
	t.Helper()

	_, err := r.repo.CreateTag(name, hash, nil)
	require.NoError(t, err)
}

// annotatedTag creates a tag object for hash.
func (r *testRepository) annotatedTag(t *testing.T, name string, hash plumbing.Hash) {
	t.Helper()

	_, err := r.repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  r.signature(),
		Message: "release " + name,
	})
	require.NoError(t, err)
}
