package recipe

import (
	"maps"

	"github.com/openeaw/openglyph-recipe/internal/domain/release"
)

// Descriptor is the package metadata written by a configuration run.
type Descriptor struct {
	// Name, License, Homepage, URL and Description are copied from the recipe.
	Name        string `yaml:"name"`
	License     string `yaml:"license,omitempty"`
	Homepage    string `yaml:"homepage,omitempty"`
	URL         string `yaml:"url,omitempty"`
	Description string `yaml:"description,omitempty"`
	// Version is the resolved version string.
	Version string `yaml:"version"`
	// Build holds the decoded version, absent when the version is not in normalized form.
	Build *BuildInfo `yaml:"build,omitempty"`
	// Requires lists the requirements in reference form.
	Requires []string `yaml:"requires,omitempty"`
	// Options are the default option values.
	Options map[string]string `yaml:"options,omitempty"`
	// Libs are the library names consumers link against.
	Libs []string `yaml:"libs,omitempty"`
	// Files maps exported source paths to their base64 checksums.
	Files map[string]string `yaml:"files,omitempty"`
}

// BuildInfo is the YAML form of a decoded release.Version.
type BuildInfo struct {
	Major  uint64 `yaml:"major"`
	Minor  uint64 `yaml:"minor"`
	Patch  uint64 `yaml:"patch"`
	Commit string `yaml:"commit"`
	Clean  bool   `yaml:"clean"`
}

// NewDescriptor stamps r with the resolved version. decoded may be nil.
func NewDescriptor(r *Recipe, version string, decoded *release.Version) *Descriptor {
	d := &Descriptor{
		Name:        r.Name,
		License:     r.License,
		Homepage:    r.Homepage,
		URL:         r.URL,
		Description: r.Description,
		Version:     version,
		Requires:    append([]string(nil), r.Requires...),
		Options:     make(map[string]string, len(r.DefaultOptions)),
		Libs:        append([]string(nil), r.Libs...),
		Files:       make(map[string]string),
	}

	maps.Copy(d.Options, r.DefaultOptions)

	if decoded != nil {
		d.Build = &BuildInfo{
			Major:  decoded.Major,
			Minor:  decoded.Minor,
			Patch:  decoded.Patch,
			Commit: decoded.Commit,
			Clean:  decoded.IsClean,
		}
	}

	return d
}
