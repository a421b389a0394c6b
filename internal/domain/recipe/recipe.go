package recipe

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

var (
	// ErrNameRequired is returned when the recipe has no package name.
	ErrNameRequired = errors.New("recipe name must be provided")
	// ErrUnknownOption is returned when a default refers to an undeclared option.
	ErrUnknownOption = errors.New("default for undeclared option")
	// ErrOptionValue is returned when a default is not one of the option's values.
	ErrOptionValue = errors.New("default is not an allowed option value")
)

// Recipe describes how the native library is packaged.
type Recipe struct {
	// Name is the package name.
	Name string `yaml:"name"`
	// License is an SPDX identifier.
	License string `yaml:"license,omitempty"`
	// Homepage and URL point at the project.
	Homepage string `yaml:"homepage,omitempty"`
	URL      string `yaml:"url,omitempty"`
	// Description is a one-line summary.
	Description string `yaml:"description,omitempty"`
	// Requires lists "name/range" references to other packages.
	Requires []string `yaml:"requires,omitempty"`
	// Options maps each build option to its allowed values.
	Options map[string][]string `yaml:"options,omitempty"`
	// DefaultOptions picks one allowed value per option.
	DefaultOptions map[string]string `yaml:"default_options,omitempty"`
	// Exports are glob patterns, relative to the recipe folder, of the sources shipped with the package.
	Exports []string `yaml:"exports,omitempty"`
	// Libs are the library names consumers link against.
	Libs []string `yaml:"libs,omitempty"`
}

// Default returns the OpenGlyph recipe.
func Default() Recipe {
	return Recipe{
		Name:        "openglyph",
		License:     "MIT",
		Homepage:    "https://github.com/OpenEaW/OpenGlyph",
		URL:         "https://github.com/OpenEaW/OpenGlyph",
		Description: "An open-source game engine compatible with Petroglyph's GlyphX assets",
		Requires: []string{
			"khepri/[<1.0]",
			"rapidxml/1.13",
		},
		Options: map[string][]string{
			"shared": {"true", "false"},
			"fPIC":   {"true", "false"},
		},
		DefaultOptions: map[string]string{
			"shared": "false",
			"fPIC":   "true",
		},
		Exports: []string{"CMakeLists.txt", "include/*", "src/*"},
		Libs:    []string{"OpenGlyph"},
	}
}

// Requirements parses Requires.
func (r *Recipe) Requirements() ([]Requirement, error) {
	reqs := make([]Requirement, 0, len(r.Requires))

	for _, ref := range r.Requires {
		req, err := ParseRequirement(ref)
		if err != nil {
			return nil, err
		}

		reqs = append(reqs, req)
	}

	return reqs, nil
}

// Validate checks the name, requirements and option defaults.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}

	if _, err := r.Requirements(); err != nil {
		return err
	}

	names := make([]string, 0, len(r.DefaultOptions))
	for name := range r.DefaultOptions {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		allowed, ok := r.Options[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownOption, name)
		}

		if value := r.DefaultOptions[name]; !slices.Contains(allowed, value) {
			return fmt.Errorf("%w: %s=%s", ErrOptionValue, name, value)
		}
	}

	return nil
}
