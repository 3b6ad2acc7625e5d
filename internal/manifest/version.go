package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SupportedSchemas is the range of declarative agent schema versions the
// renderers have been checked against.
const SupportedSchemas = ">= 1.0, < 2.0"

var supportedConstraint = mustConstraint(SupportedSchemas)

// SchemaVersion parses a descriptor version tag such as "v1.5".
// A leading "v" is stripped before parsing.
func SchemaVersion(version string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing schema version %q: %w", version, err)
	}
	return v, nil
}

// IsKnownSchema reports whether version parses and falls within
// SupportedSchemas. Unknown versions still convert; callers warn.
func IsKnownSchema(version string) bool {
	v, err := SchemaVersion(version)
	if err != nil {
		return false
	}
	return supportedConstraint.Check(v)
}

func mustConstraint(c string) *semver.Constraints {
	cs, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return cs
}
