// Package vcs answers the three read-only questions a version resolver asks
// of a repository: the nearest tag, the current revision hash and whether
// the working tree is clean.
//
// GitCLI shells out to the git executable, GoGit reads the repository in
// process through go-git, and None models a source archive with no history.
package vcs
