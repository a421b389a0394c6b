// Package recipe runs the configuration step of the packaging recipe.
//
// It resolves the version from version control, decodes it into build
// variables for the native build, checksums the exported sources and writes
// the package descriptor. Version control problems never fail a run; only
// configuration and file system errors do.
package recipe
