package vcs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseBackend checks accepted names, the default and the error path.
func TestParseBackend(t *testing.T) {
	t.Parallel()

	cases := map[string]Backend{
		"":       BackendGit,
		"git":    BackendGit,
		" GIT ":  BackendGit,
		"go-git": BackendGoGit,
		"gogit":  BackendGoGit,
		"none":   BackendNone,
	}
	for in, want := range cases {
		got, err := ParseBackend(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got)
	}

	_, err := ParseBackend("svn")
	require.ErrorIs(t, err, ErrUnknownBackend)
}

// TestOpen returns the implementation matching each backend.
func TestOpen(t *testing.T) {
	t.Parallel()

	q, err := Open(BackendGit, Options{Folder: "."})
	require.NoError(t, err)
	require.IsType(t, &GitCLI{}, q)

	q, err = Open(BackendGoGit, Options{})
	require.NoError(t, err)
	require.IsType(t, &GoGit{}, q)

	q, err = Open(BackendNone, Options{})
	require.NoError(t, err)
	require.IsType(t, None{}, q)

	_, err = Open(Backend("hg"), Options{})
	require.ErrorIs(t, err, ErrUnknownBackend)
}

// TestNone fails every query with ErrUnavailable.
func TestNone(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := None{}.DescribeTags(ctx)
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = None{}.RevisionHash(ctx)
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = None{}.IsWorkingTreeClean(ctx)
	require.ErrorIs(t, err, ErrUnavailable)
}

// TestIsHex covers the revision hash check.
func TestIsHex(t *testing.T) {
	t.Parallel()

	require.True(t, isHex("9f8e7d6c5b4a3210FEED"))
	require.False(t, isHex(""))
	require.False(t, isHex("HEAD"))
}
