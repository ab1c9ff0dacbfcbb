// Package core provides shared types and errors for the workspace model.
package core

import "time"

// Package describes the identity and publication metadata a manifest
// declares for one workspace member.
type Package struct {
	Name        string
	Version     string
	Edition     string
	Description string
	License     string // SPDX expression, e.g. "MIT OR Apache-2.0"
	Homepage    string
	Repository  string
	Keywords    []string
}

// Dependency is one declared dependency of a package. Exactly one of
// Path (local sibling reference) or Constraint (registry reference) is set.
type Dependency struct {
	Name       string
	Constraint string // version requirement, e.g. "0.9.0", "^1.2", ">=1.0, <2"
	Path       string // relative path to a sibling workspace member
	Scope      Scope
	Optional   bool
}

// IsLocal reports whether the dependency references a sibling package
// by path rather than a registry version.
func (d Dependency) IsLocal() bool {
	return d.Path != ""
}

// Scope indicates when a dependency is required.
type Scope string

const (
	Runtime     Scope = "runtime"
	Development Scope = "development"
	Build       Scope = "build"
)

// Publication is a registry's record of one published (name, version)
// pair. Once published a record is immutable except for the yanked flag.
type Publication struct {
	Name        string
	Version     string
	License     string
	Description string
	Owner       string
	Integrity   string // sha256-...
	Yanked      bool
	PublishedAt time.Time
}

// ResolvedDependency is the outcome of resolving one declared
// dependency to a concrete package reference.
type ResolvedDependency struct {
	Name    string
	Version string
	Local   bool
	Dir     string // workspace-relative directory for local dependencies
}
