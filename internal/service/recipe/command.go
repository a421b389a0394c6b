package recipe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openeaw/openglyph-recipe/internal/buildvars"
	"github.com/openeaw/openglyph-recipe/internal/config"
	domain "github.com/openeaw/openglyph-recipe/internal/domain/recipe"
	"github.com/openeaw/openglyph-recipe/internal/domain/release"
	"github.com/openeaw/openglyph-recipe/internal/logger"
	"github.com/openeaw/openglyph-recipe/internal/repository/descriptor"
	"github.com/openeaw/openglyph-recipe/internal/service/resolver"
	"github.com/openeaw/openglyph-recipe/internal/vcs"
)

// Options contains inputs for the recipe entry points. Empty fields keep
// the configuration file values.
type Options struct {
	// ConfigPath is the recipe configuration; a missing file means built-in defaults.
	ConfigPath string
	// Folder is the recipe folder: version control is queried and exports are collected there.
	Folder string
	// Backend overrides the version control backend.
	Backend string
	// Format overrides the build variable format.
	Format string
	// OutputPath overrides where build variables are written; "-" disables the file.
	OutputPath string
	// DescriptorPath overrides where the package descriptor is written; "-" disables it.
	DescriptorPath string
	// Prefix overrides the build variable prefix.
	Prefix string
	// LogLevel overrides the configured log level.
	LogLevel string
}

// Result summarizes a configuration run.
type Result struct {
	// Version is the resolved version string.
	Version string
	// Decoded is nil when Version is not in normalized form.
	Decoded *release.Version
	// Variables are the build variables handed to the native build.
	Variables []buildvars.Variable
}

// LoadConfig loads the configuration and applies the overrides from opts.
func LoadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.Backend != "" {
		cfg.VCS.Backend = opts.Backend
	}

	if opts.Folder != "" {
		cfg.VCS.Folder = opts.Folder
	}

	if cfg.VCS.Folder == "" && opts.ConfigPath != "" {
		cfg.VCS.Folder = filepath.Dir(opts.ConfigPath)
	}

	if opts.Format != "" {
		cfg.Output.Format = opts.Format
	}

	if opts.OutputPath != "" {
		cfg.Output.Path = opts.OutputPath
	}

	if opts.DescriptorPath != "" {
		cfg.Output.Descriptor = opts.DescriptorPath
	}

	if opts.Prefix != "" {
		cfg.Output.Prefix = opts.Prefix
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ResolveVersion opens the configured backend and resolves the version string.
func ResolveVersion(ctx context.Context, cfg *config.Config) (string, error) {
	backend, err := vcs.ParseBackend(cfg.VCS.Backend)
	if err != nil {
		return "", err
	}

	q, err := vcs.Open(backend, vcs.Options{
		Folder:  cfg.VCS.Folder,
		Timeout: cfg.VCS.Timeout,
	})
	if err != nil {
		return "", err
	}

	ctx = logger.WithKV(ctx, "backend", backend)

	return resolver.Resolve(ctx, q, resolver.Options{ShortHashLength: cfg.VCS.ShortHashLength}), nil
}

// Decode turns a version string into build variables.
// A string that is not in normalized form yields only the raw string variable.
func Decode(version, prefix string) *Result {
	res := &Result{Version: version}

	if v, ok := release.Decode(version); ok {
		res.Decoded = &v
	}

	res.Variables = buildvars.FromVersion(prefix, version, res.Decoded)

	return res
}

// Run executes the configuration workflow.
func Run(ctx context.Context, opts *Options) (*Result, error) {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "openglyph-recipe")

	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	version, err := ResolveVersion(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve version: %w", err)
	}

	res := Decode(version, cfg.Output.Prefix)
	logDecoded(ctx, res)

	if err = writeVariables(ctx, cfg, res.Variables); err != nil {
		return nil, err
	}

	if err = writeDescriptor(ctx, cfg, res); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Recipe configured", "name", cfg.Recipe.Name, "version", res.Version)

	return res, nil
}

// logDecoded reports the decoded fields, or that version metadata is unavailable.
func logDecoded(ctx context.Context, res *Result) {
	if res.Decoded == nil {
		logger.WarnKV(ctx, "Version is not in normalized form, build variables limited to the version string",
			"version", res.Version)

		return
	}

	logger.InfoKV(ctx, "Resolved version",
		"version", res.Version,
		"major", res.Decoded.Major,
		"minor", res.Decoded.Minor,
		"patch", res.Decoded.Patch,
		"commit", res.Decoded.Commit,
		"clean", res.Decoded.IsClean)
}

// writeVariables renders the build variables to the configured file.
func writeVariables(ctx context.Context, cfg *config.Config, vars []buildvars.Variable) error {
	if cfg.Output.Path == config.DisabledPath {
		return nil
	}

	var buf bytes.Buffer
	if err := buildvars.Render(&buf, buildvars.Format(cfg.Output.Format), vars); err != nil {
		return fmt.Errorf("render build variables: %w", err)
	}

	path := filepath.Clean(cfg.Output.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write build variables: %w", err)
	}

	logger.InfoKV(ctx, "Build variables written", "path", path, "format", cfg.Output.Format, "count", len(vars))

	return nil
}

// writeDescriptor checksums the exports and saves the package descriptor.
func writeDescriptor(ctx context.Context, cfg *config.Config, res *Result) error {
	if cfg.Output.Descriptor == config.DisabledPath {
		return nil
	}

	d := domain.NewDescriptor(&cfg.Recipe, res.Version, res.Decoded)

	files, err := collectExports(ctx, exportsRoot(cfg), cfg.Recipe.Exports)
	if err != nil {
		return fmt.Errorf("collect exports: %w", err)
	}

	d.Files = files

	repo := descriptor.NewFileRepository(cfg.Output.Descriptor)
	if err = repo.Save(ctx, d); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Package descriptor written", "path", repo.Path(), "files", len(files))

	return nil
}

// exportsRoot is the folder export patterns are relative to.
func exportsRoot(cfg *config.Config) string {
	if cfg.VCS.Folder == "" {
		return "."
	}

	return cfg.VCS.Folder
}
