// Package recipe contains the packaging metadata of the native library:
// identity, requirements on other packages, build options and exported
// sources, plus the package descriptor written for each configuration run.
package recipe
