// Package descriptor implements persistence for the package Descriptor.
//
// The FileRepository stores and loads the descriptor as YAML on disk and
// exposes a Repository interface that the recipe service depends on.
package descriptor
