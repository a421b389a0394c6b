package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openeaw/openglyph-recipe/internal/buildvars"
	"github.com/openeaw/openglyph-recipe/internal/domain/recipe"
	"github.com/openeaw/openglyph-recipe/internal/domain/release"
	"github.com/openeaw/openglyph-recipe/internal/logger"
	"github.com/openeaw/openglyph-recipe/internal/vcs"
)

// Config holds everything a recipe run needs.
type Config struct {
	// Recipe is the packaging metadata.
	Recipe recipe.Recipe `yaml:"recipe"`
	// VCS selects and tunes the version control backend.
	VCS VCS `yaml:"vcs"`
	// Output controls the generated files.
	Output Output `yaml:"output"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level,omitempty"`
}

// VCS configures version control queries.
type VCS struct {
	// Backend is one of "git", "go-git" or "none".
	Backend string `yaml:"backend"`
	// Folder is the directory queried; empty means the recipe folder.
	Folder string `yaml:"folder,omitempty"`
	// Timeout bounds each git command.
	Timeout time.Duration `yaml:"timeout"`
	// ShortHashLength is the number of commit hash characters kept.
	ShortHashLength int `yaml:"short_hash_length"`
}

// Output configures the build variable file and the package descriptor.
type Output struct {
	// Format is one of the buildvars formats.
	Format string `yaml:"format"`
	// Path is where build variables are written.
	Path string `yaml:"path"`
	// Prefix is prepended to variable names.
	Prefix string `yaml:"prefix"`
	// Descriptor is where the package descriptor is written; "-" disables it.
	Descriptor string `yaml:"descriptor"`
}

const (
	// DefaultConfigFilename is the default filename of the recipe configuration.
	DefaultConfigFilename = "openglyph-recipe.yaml"

	// DefaultOutputFilename is the default build variable file.
	DefaultOutputFilename = "openglyph-toolchain.cmake"

	// DefaultDescriptorFilename is the default package descriptor file.
	DefaultDescriptorFilename = "openglyph-package.yaml"

	// DisabledPath turns off an output.
	DisabledPath = "-"

	// DefaultFilePermissions is the default file permission for generated files.
	DefaultFilePermissions = 0o644

	// maxShortHashLength is the length of a full SHA-1 hash.
	maxShortHashLength = 40
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errHashLength is returned for short hash lengths outside 1..40.
	errHashLength = errors.New("short hash length out of range")
	// errUnknownLogLevel is returned for log levels zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Recipe: recipe.Default(),
		VCS: VCS{
			Backend:         string(vcs.BackendGit),
			Timeout:         vcs.DefaultTimeout,
			ShortHashLength: release.ShortHashLength,
		},
		Output: Output{
			Format:     string(buildvars.FormatCMake),
			Path:       DefaultOutputFilename,
			Prefix:     buildvars.DefaultPrefix,
			Descriptor: DefaultDescriptorFilename,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from the provided path and validates it.
// Fields missing from the file keep their Default values, except the recipe
// section, which replaces the built-in recipe as a whole when present.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	cfg.Recipe = recipe.Recipe{}

	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if reflect.ValueOf(cfg.Recipe).IsZero() {
		cfg.Recipe = recipe.Default()
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault is like Load but returns Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate fills defaults and checks every section.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := cfg.Recipe.Validate(); err != nil {
		return fmt.Errorf("recipe: %w", err)
	}

	if err := validateVCS(&cfg.VCS); err != nil {
		return fmt.Errorf("vcs: %w", err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	return nil
}

// validateVCS normalizes the backend name and checks the hash length.
func validateVCS(v *VCS) error {
	backend, err := vcs.ParseBackend(v.Backend)
	if err != nil {
		return err
	}

	v.Backend = string(backend)

	// Set default timeout if not specified
	if v.Timeout <= 0 {
		v.Timeout = vcs.DefaultTimeout
	}

	if v.ShortHashLength == 0 {
		v.ShortHashLength = release.ShortHashLength
	}

	if v.ShortHashLength < 1 || v.ShortHashLength > maxShortHashLength {
		return fmt.Errorf("%w: %d", errHashLength, v.ShortHashLength)
	}

	return nil
}

// validateOutput normalizes the format and fills default paths.
func validateOutput(o *Output) error {
	format, err := buildvars.ParseFormat(o.Format)
	if err != nil {
		return err
	}

	o.Format = string(format)

	if o.Path == "" {
		o.Path = DefaultOutputFilename
	}

	if o.Prefix == "" {
		o.Prefix = buildvars.DefaultPrefix
	}

	if o.Descriptor == "" {
		o.Descriptor = DefaultDescriptorFilename
	}

	return nil
}
