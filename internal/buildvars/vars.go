package buildvars

import (
	"sort"
	"strconv"
	"strings"

	"github.com/openeaw/openglyph-recipe/internal/domain/release"
)

// DefaultPrefix is prepended to every variable name.
const DefaultPrefix = "OPENGLYPH_VERSION"

// Variable suffixes appended to the prefix.
const (
	SuffixMajor  = "MAJOR"
	SuffixMinor  = "MINOR"
	SuffixPatch  = "PATCH"
	SuffixCommit = "COMMIT"
	SuffixClean  = "CLEAN"
	SuffixString = "STRING"
)

// Variable is a single named build value.
type Variable struct {
	Name  string
	Value string
}

// FromVersion builds the variables for raw, the resolved version string.
// When v is nil only <prefix>_STRING is produced, so consumers see version
// metadata as unavailable. The result is sorted by name.
func FromVersion(prefix, raw string, v *release.Version) []Variable {
	prefix = normalizePrefix(prefix)

	vars := []Variable{{Name: prefix + SuffixString, Value: raw}}

	if v != nil {
		vars = append(vars,
			Variable{Name: prefix + SuffixMajor, Value: strconv.FormatUint(v.Major, 10)},
			Variable{Name: prefix + SuffixMinor, Value: strconv.FormatUint(v.Minor, 10)},
			Variable{Name: prefix + SuffixPatch, Value: strconv.FormatUint(v.Patch, 10)},
			Variable{Name: prefix + SuffixCommit, Value: v.Commit},
			Variable{Name: prefix + SuffixClean, Value: strconv.FormatBool(v.IsClean)},
		)
	}

	sort.Slice(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})

	return vars
}

// Lookup returns the value of name.
func Lookup(vars []Variable, name string) (string, bool) {
	for _, v := range vars {
		if v.Name == name {
			return v.Value, true
		}
	}

	return "", false
}

// normalizePrefix upper-cases prefix and ends it with a single underscore.
func normalizePrefix(prefix string) string {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return strings.TrimRight(prefix, "_") + "_"
}
