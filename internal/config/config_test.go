package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and rejected values for every section.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)

	// Defaults are filled in.
	cfg := Default()
	cfg.VCS = VCS{Backend: "GoGit"}
	cfg.Output = Output{Format: "yml"}
	cfg.LogLevel = ""

	require.NoError(t, Validate(cfg))
	require.Equal(t, "go-git", cfg.VCS.Backend)
	require.Equal(t, 10*time.Second, cfg.VCS.Timeout)
	require.Equal(t, 12, cfg.VCS.ShortHashLength)
	require.Equal(t, "yaml", cfg.Output.Format)
	require.Equal(t, DefaultOutputFilename, cfg.Output.Path)
	require.Equal(t, "OPENGLYPH_VERSION", cfg.Output.Prefix)
	require.Equal(t, DefaultDescriptorFilename, cfg.Output.Descriptor)
	require.Equal(t, "info", cfg.LogLevel)

	// Bad backend.
	cfg = Default()
	cfg.VCS.Backend = "svn"
	require.Error(t, Validate(cfg))

	// Bad hash length.
	cfg = Default()
	cfg.VCS.ShortHashLength = 41
	require.ErrorIs(t, Validate(cfg), errHashLength)

	// Bad format.
	cfg = Default()
	cfg.Output.Format = "ninja"
	require.Error(t, Validate(cfg))

	// Bad recipe.
	cfg = Default()
	cfg.Recipe.Name = ""
	require.Error(t, Validate(cfg))

	// Bad log level.
	cfg = Default()
	cfg.LogLevel = "verbose"
	require.ErrorIs(t, Validate(cfg), errUnknownLogLevel)
}

// TestSaveLoadRoundtrip ensures the configuration is persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recipe.yaml")

	cfg := Default()
	cfg.VCS.Backend = "none"
	cfg.VCS.Timeout = 3 * time.Second
	cfg.Output.Format = "toml"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

// TestLoad_PartialFile keeps defaults for fields the file leaves out.
func TestLoad_PartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recipe.yaml")
	contents := `
vcs:
  backend: go-git
  timeout: 2s
output:
  format: env
  path: build/version.env
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "openglyph", cfg.Recipe.Name)
	require.Equal(t, "go-git", cfg.VCS.Backend)
	require.Equal(t, 2*time.Second, cfg.VCS.Timeout)
	require.Equal(t, 12, cfg.VCS.ShortHashLength)
	require.Equal(t, "env", cfg.Output.Format)
	require.Equal(t, "build/version.env", cfg.Output.Path)
}

// TestLoadOrDefault falls back only when the file is missing.
func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("vcs: [unterminated"), 0o600))

	_, err = LoadOrDefault(broken)
	require.Error(t, err)
}

// TestLoad_RecipeReplacesDefaults does not merge a custom recipe into the built-in one.
func TestLoad_RecipeReplacesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recipe.yaml")
	contents := `
recipe:
  name: khepri
  license: MIT
  options:
    shared: ["true", "false"]
  default_options:
    shared: "true"
  libs: [Khepri]
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "khepri", cfg.Recipe.Name)
	require.Empty(t, cfg.Recipe.Requires)
	require.Equal(t, map[string]string{"shared": "true"}, cfg.Recipe.DefaultOptions)
	require.Equal(t, []string{"Khepri"}, cfg.Recipe.Libs)
}
