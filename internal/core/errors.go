package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a (name, version) pair was never published.
var ErrNotFound = errors.New("not found")

// ErrUnresolved is returned when a declared dependency cannot be
// satisfied locally or by the registry.
var ErrUnresolved = errors.New("unresolved dependency")

// ErrDuplicateVersion is returned when a publish would not strictly
// increase the highest published version of a package.
var ErrDuplicateVersion = errors.New("duplicate version")

// ErrNameCollision is returned when a publish targets a name owned by a
// different publisher.
var ErrNameCollision = errors.New("name collision")

// NotFoundError wraps ErrNotFound with the package coordinates.
type NotFoundError struct {
	Name    string
	Version string
}

func (e *NotFoundError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("package %s version %s not found", e.Name, e.Version)
	}
	return fmt.Sprintf("package %s not found", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// UnresolvedDependencyError wraps ErrUnresolved with the declaring
// package and the dependency that failed.
type UnresolvedDependencyError struct {
	Package    string // declaring package
	Dependency string
	Constraint string // empty for local path references
	Reason     string
}

func (e *UnresolvedDependencyError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s: dependency %s (%s): %s", e.Package, e.Dependency, e.Constraint, e.Reason)
	}
	return fmt.Sprintf("%s: dependency %s: %s", e.Package, e.Dependency, e.Reason)
}

func (e *UnresolvedDependencyError) Unwrap() error {
	return ErrUnresolved
}

// DuplicateVersionError wraps ErrDuplicateVersion with the attempted
// and highest published versions.
type DuplicateVersionError struct {
	Name      string
	Version   string
	Published string // highest version already published
}

func (e *DuplicateVersionError) Error() string {
	return fmt.Sprintf("package %s: version %s does not exceed published %s", e.Name, e.Version, e.Published)
}

func (e *DuplicateVersionError) Unwrap() error {
	return ErrDuplicateVersion
}

// NameCollisionError wraps ErrNameCollision with the owning publisher.
type NameCollisionError struct {
	Name  string
	Owner string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("package name %s is owned by %s", e.Name, e.Owner)
}

func (e *NameCollisionError) Unwrap() error {
	return ErrNameCollision
}
