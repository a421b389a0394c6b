package recipe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openeaw/openglyph-recipe/internal/domain/release"
)

// TestParseRequirement covers bracketed ranges, exact versions and malformed references.
func TestParseRequirement(t *testing.T) {
	t.Parallel()

	khepri, err := ParseRequirement("khepri/[<1.0]")
	require.NoError(t, err)
	require.Equal(t, "khepri", khepri.Name)
	require.Equal(t, "<1.0", khepri.Range)
	require.Equal(t, "khepri/[<1.0]", khepri.String())
	require.True(t, khepri.Allows("0.9.3"))
	require.False(t, khepri.Allows("1.0.0"))
	require.False(t, khepri.Allows("not-a-version"))

	rapidxml, err := ParseRequirement(" rapidxml/1.13 ")
	require.NoError(t, err)
	require.Equal(t, "rapidxml", rapidxml.Name)
	require.Equal(t, "rapidxml/1.13", rapidxml.String())

	for _, ref := range []string{"", "khepri", "/1.0", "khepri/"} {
		_, err = ParseRequirement(ref)
		require.ErrorIs(t, err, ErrInvalidRequirement, ref)
	}

	for _, ref := range []string{"khepri/[<1.0", "khepri/[not a range]"} {
		_, err = ParseRequirement(ref)
		require.ErrorIs(t, err, ErrInvalidRange, ref)
	}
}

// TestRequirement_ZeroValue never allows anything.
func TestRequirement_ZeroValue(t *testing.T) {
	t.Parallel()

	require.False(t, Requirement{}.Allows("1.0.0"))
}

// TestDefault_IsValid ensures the built-in recipe passes validation.
func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	r := Default()
	require.NoError(t, r.Validate())

	reqs, err := r.Requirements()
	require.NoError(t, err)
	require.Len(t, reqs, 2)
}

// TestValidate rejects missing names, bad requirements and bad option defaults.
func TestValidate(t *testing.T) {
	t.Parallel()

	r := Default()
	r.Name = ""
	require.ErrorIs(t, r.Validate(), ErrNameRequired)

	r = Default()
	r.Requires = append(r.Requires, "broken")
	require.ErrorIs(t, r.Validate(), ErrInvalidRequirement)

	r = Default()
	r.DefaultOptions = map[string]string{"lto": "true"}
	require.ErrorIs(t, r.Validate(), ErrUnknownOption)

	r = Default()
	r.DefaultOptions = map[string]string{"shared": "maybe"}
	require.ErrorIs(t, r.Validate(), ErrOptionValue)
}

// TestNewDescriptor copies metadata and the decoded version without sharing slices.
func TestNewDescriptor(t *testing.T) {
	t.Parallel()

	r := Default()
	v, ok := release.Decode("1.2.3+abc123def456.dirty")
	require.True(t, ok)

	d := NewDescriptor(&r, v.String(), &v)
	require.Equal(t, "openglyph", d.Name)
	require.Equal(t, "1.2.3+abc123def456.dirty", d.Version)
	require.Equal(t, &BuildInfo{Major: 1, Minor: 2, Patch: 3, Commit: "abc123def456", Clean: false}, d.Build)
	require.Equal(t, r.DefaultOptions, d.Options)

	d.Requires[0] = "changed/1.0"
	require.Equal(t, "khepri/[<1.0]", r.Requires[0])

	bare := NewDescriptor(&r, "0.0.0", nil)
	require.Nil(t, bare.Build)
}
