package vcs

import "context"

// None is a Querier for builds without repository history, such as a
// source archive. Every query fails with ErrUnavailable.
type None struct{}

// DescribeTags always fails.
func (None) DescribeTags(context.Context) (string, error) {
	return "", ErrUnavailable
}

// RevisionHash always fails.
func (None) RevisionHash(context.Context) (string, error) {
	return "", ErrUnavailable
}

// IsWorkingTreeClean always fails.
func (None) IsWorkingTreeClean(context.Context) (bool, error) {
	return false, ErrUnavailable
}
