// Package resolver derives the normalized version string of a build from
// version control metadata.
//
// Both queries are best effort: without a usable tag the version is 0.0.0,
// and without a revision the "+<commit>[.dirty]" suffix is left out.
package resolver
