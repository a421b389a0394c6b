package vcs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GoGit queries a repository in process through go-git.
type GoGit struct {
	// folder is a directory inside the repository; parents are searched for .git.
	folder string
	// repo is opened on first use.
	repo *git.Repository
}

// NewGoGit creates a GoGit rooted at folder. An empty folder means the
// current working directory.
func NewGoGit(folder string) *GoGit {
	if folder == "" {
		folder = "."
	}

	return &GoGit{folder: filepath.Clean(folder)}
}

// DescribeTags walks history from HEAD breadth first and returns the first
// tagged commit's tag. When a commit carries several tags, annotated tags
// win over lightweight ones, then the greatest name.
func (g *GoGit) DescribeTags(ctx context.Context) (string, error) {
	repo, err := g.repository()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}

	tags, err := tagsByCommit(repo)
	if err != nil {
		return "", err
	}

	if len(tags) == 0 {
		return "", ErrNoTags
	}

	commits, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderBSF})
	if err != nil {
		return "", fmt.Errorf("walk history: %w", err)
	}
	defer commits.Close()

	var found string

	err = commits.ForEach(func(c *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		candidates, ok := tags[c.Hash]
		if !ok {
			return nil
		}

		found = pickTag(candidates)

		return storer.ErrStop
	})
	if err != nil {
		return "", fmt.Errorf("walk history: %w", err)
	}

	if found == "" {
		return "", ErrNoTags
	}

	return found, nil
}

// RevisionHash returns the hash HEAD points to.
func (g *GoGit) RevisionHash(_ context.Context) (string, error) {
	repo, err := g.repository()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// IsWorkingTreeClean reports whether the worktree status is empty.
// Untracked files count as modifications.
func (g *GoGit) IsWorkingTreeClean(_ context.Context) (bool, error) {
	repo, err := g.repository()
	if err != nil {
		return false, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("open worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("worktree status: %w", err)
	}

	return status.IsClean(), nil
}

// repository opens the repository once and caches it.
func (g *GoGit) repository() (*git.Repository, error) {
	if g.repo != nil {
		return g.repo, nil
	}

	repo, err := git.PlainOpenWithOptions(g.folder, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", g.folder, err)
	}

	g.repo = repo

	return repo, nil
}

// taggedName is a tag reference found while indexing tags.
type taggedName struct {
	name      string
	annotated bool
}

// tagsByCommit maps every tagged commit to its tags, peeling annotated tags.
func tagsByCommit(repo *git.Repository) (map[plumbing.Hash][]taggedName, error) {
	refs, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer refs.Close()

	tags := make(map[plumbing.Hash][]taggedName)

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		annotated := false

		tagObject, tagErr := repo.TagObject(target)
		switch {
		case tagErr == nil:
			commit, commitErr := tagObject.Commit()
			if commitErr != nil {
				// Tags of trees or blobs cannot be described.
				return nil //nolint:nilerr // Skipping non-commit tags is intended.
			}

			target = commit.Hash
			annotated = true
		case !errors.Is(tagErr, plumbing.ErrObjectNotFound):
			return tagErr
		}

		tags[target] = append(tags[target], taggedName{name: ref.Name().Short(), annotated: annotated})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index tags: %w", err)
	}

	return tags, nil
}

// pickTag chooses one tag among several pointing at the same commit.
func pickTag(candidates []taggedName) string {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].annotated != candidates[j].annotated {
			return candidates[i].annotated
		}

		return candidates[i].name > candidates[j].name
	})

	return candidates[0].name
}
