// Package config defines the recipe configuration and provides helpers to
// load, validate and save it in YAML format.
//
// A Config bundles the recipe metadata with the version control backend
// settings and the output locations of a configuration run. Missing files
// and missing fields fall back to the built-in OpenGlyph defaults.
package config
