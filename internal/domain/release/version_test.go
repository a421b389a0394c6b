package release

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDecode covers the normalized forms and the strings the decoder must reject.
func TestDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  Version
		ok    bool
	}{
		{
			name:  "clean",
			input: "1.2.3+abc123def456",
			want:  Version{Major: 1, Minor: 2, Patch: 3, Commit: "abc123def456", IsClean: true},
			ok:    true,
		},
		{
			name:  "dirty",
			input: "1.2.3+abc123def456.dirty",
			want:  Version{Major: 1, Minor: 2, Patch: 3, Commit: "abc123def456", IsClean: false},
			ok:    true,
		},
		{
			name:  "upper case hash",
			input: "10.0.7+ABCDEF",
			want:  Version{Major: 10, Minor: 0, Patch: 7, Commit: "ABCDEF", IsClean: true},
			ok:    true,
		},
		{name: "fallback", input: "0.0.0"},
		{name: "bare numeric", input: "2.5.0"},
		{name: "not a version", input: "not-a-version"},
		{name: "empty", input: ""},
		{name: "empty hash", input: "1.2.3+"},
		{name: "non hex hash", input: "1.2.3+xyz"},
		{name: "trailing text", input: "1.2.3+abc.dirty.extra"},
		{name: "leading v", input: "v1.2.3+abc"},
		{name: "unescaped dot", input: "1x2x3+abc"},
		{name: "overflow", input: "99999999999999999999.0.0+abc"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Decode(tc.input)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

// TestStringDecodeRoundtrip checks that every version with a commit decodes back to itself.
func TestStringDecodeRoundtrip(t *testing.T) {
	t.Parallel()

	versions := []Version{
		{Major: 0, Minor: 0, Patch: 0, Commit: "0", IsClean: true},
		{Major: 2, Minor: 5, Patch: 0, Commit: "9f8e7d6c5b4a", IsClean: false},
		{Major: 1, Minor: 22, Patch: 333, Commit: "DEADBEEF", IsClean: true},
	}

	for _, v := range versions {
		got, ok := Decode(v.String())
		require.True(t, ok, v.String())
		require.Equal(t, v, got)
	}
}

// TestStringWithoutCommit renders the bare core that the decoder rejects.
func TestStringWithoutCommit(t *testing.T) {
	t.Parallel()

	v := Version{Major: 3, Minor: 1, Patch: 4}
	require.Equal(t, "3.1.4", v.String())

	_, ok := Decode(v.String())
	require.False(t, ok)
}

// TestShortHash verifies truncation and the default length.
func TestShortHash(t *testing.T) {
	t.Parallel()

	full := "9f8e7d6c5b4a3210feed"

	require.Equal(t, "9f8e7d6c5b4a", ShortHash(full, 0))
	require.Equal(t, "9f8e7d6", ShortHash(full, 7))
	require.Equal(t, "abc", ShortHash("abc", ShortHashLength))
}
