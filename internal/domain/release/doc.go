// Package release contains the resolved version model of a recipe build.
//
// A Version is computed once per configuration run, rendered to its
// normalized string form "<major>.<minor>.<patch>+<commit>[.dirty]" and
// decoded back by the build-variable generator.
package release
