package recipe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrInvalidRequirement is returned for references that are not "name/range".
	ErrInvalidRequirement = errors.New("invalid requirement reference")
	// ErrInvalidRange is returned when the version range does not parse.
	ErrInvalidRange = errors.New("invalid version range")
)

// Requirement is a dependency on another package, written "name/range"
// where range is an exact version ("rapidxml/1.13") or a bracketed
// constraint ("khepri/[<1.0]").
type Requirement struct {
	// Name is the required package.
	Name string
	// Range is the version constraint without brackets.
	Range string
	// bracketed records whether Range was written as "[...]".
	bracketed bool
	// constraints is the parsed form of Range.
	constraints *semver.Constraints
}

// ParseRequirement parses a "name/range" reference.
func ParseRequirement(ref string) (Requirement, error) {
	name, rng, ok := strings.Cut(strings.TrimSpace(ref), "/")
	name = strings.TrimSpace(name)
	rng = strings.TrimSpace(rng)

	if !ok || name == "" || rng == "" {
		return Requirement{}, fmt.Errorf("%w: %q", ErrInvalidRequirement, ref)
	}

	bracketed := strings.HasPrefix(rng, "[")
	if bracketed {
		if !strings.HasSuffix(rng, "]") {
			return Requirement{}, fmt.Errorf("%w: unbalanced brackets in %q", ErrInvalidRange, ref)
		}

		rng = strings.TrimSpace(rng[1 : len(rng)-1])
	}

	constraints, err := semver.NewConstraint(rng)
	if err != nil {
		return Requirement{}, fmt.Errorf("%w: %q: %w", ErrInvalidRange, ref, err)
	}

	return Requirement{
		Name:        name,
		Range:       rng,
		bracketed:   bracketed,
		constraints: constraints,
	}, nil
}

// Allows reports whether version satisfies the requirement.
// Versions that are not semantic versions are never allowed.
func (r Requirement) Allows(version string) bool {
	if r.constraints == nil {
		return false
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}

	return r.constraints.Check(v)
}

// String renders the requirement in reference form.
func (r Requirement) String() string {
	if r.bracketed {
		return r.Name + "/[" + r.Range + "]"
	}

	return r.Name + "/" + r.Range
}
