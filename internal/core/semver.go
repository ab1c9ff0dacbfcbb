package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ParseVersion parses a semantic version string.
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return v, nil
}

// CompareVersions returns -1, 0 or 1 comparing a to b by semantic
// version ordering.
func CompareVersions(a, b string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// ParseConstraint parses a version requirement string. A bare version
// like "0.9.0" is treated as a caret requirement, matching registry
// convention: "0.9.0" accepts 0.9.1 but not 0.10.0.
func ParseConstraint(s string) (*semver.Constraints, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty version constraint")
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" && isBareVersion(p) {
			p = "^" + p
		}
		parts[i] = p
	}
	c, err := semver.NewConstraint(strings.Join(parts, ", "))
	if err != nil {
		return nil, fmt.Errorf("invalid version constraint %q: %w", s, err)
	}
	return c, nil
}

// isBareVersion reports whether s starts with a digit, i.e. carries no
// operator or wildcard prefix.
func isBareVersion(s string) bool {
	return s[0] >= '0' && s[0] <= '9'
}

// MaxSatisfying returns the highest version among candidates that
// satisfies the constraint. The second return is false when none does.
// Candidates that fail to parse are skipped.
func MaxSatisfying(candidates []string, c *semver.Constraints) (string, bool) {
	var versions semver.Collection
	for _, s := range candidates {
		v, err := semver.NewVersion(s)
		if err != nil {
			continue
		}
		if c.Check(v) {
			versions = append(versions, v)
		}
	}
	if len(versions) == 0 {
		return "", false
	}
	sort.Sort(versions)
	return versions[len(versions)-1].Original(), true
}
