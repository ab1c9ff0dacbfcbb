// Package workspaces models multi-package workspaces of a Cargo-flavored
// ecosystem: member manifests, dependency resolution, build profiles,
// lockfiles, and a publish/yank registry.
//
// A workspace root holds a workspace.toml naming its members; each
// member directory holds a package.toml declaring identity, dependencies
// (sibling paths or registry version constraints) and optional profile
// overrides. Resolution unifies every external package to one version so
// all members share a single lockfile.
//
// Basic usage:
//
//	ws, err := workspaces.Load(".")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	reg, err := workspaces.NewRegistry("remote", "https://crates.io", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := workspaces.NewResolver(reg).Workspace(context.Background(), ws)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for name, pin := range res.External {
//		fmt.Println(name, pin.Version)
//	}
package workspaces

import (
	"github.com/git-pkgs/workspaces/client"
	"github.com/git-pkgs/workspaces/internal/core"
	"github.com/git-pkgs/workspaces/internal/lock"
	"github.com/git-pkgs/workspaces/internal/manifest"
	"github.com/git-pkgs/workspaces/internal/plan"
	"github.com/git-pkgs/workspaces/internal/profile"
	"github.com/git-pkgs/workspaces/internal/registry"
	"github.com/git-pkgs/workspaces/internal/resolve"
	"github.com/git-pkgs/workspaces/internal/workspace"
)

// Re-export types from internal/core
type (
	// Package is the identity and publication metadata of one member.
	Package = core.Package

	// Dependency is one declared dependency, local or external.
	Dependency = core.Dependency

	// Scope indicates when a dependency is required.
	Scope = core.Scope

	// Publication is a registry's record of a published version.
	Publication = core.Publication

	// ResolvedDependency is a dependency resolved to a concrete version.
	ResolvedDependency = core.ResolvedDependency
)

// Re-export workspace and manifest types
type (
	// Workspace is a loaded workspace root with its members and lockfile.
	Workspace = workspace.Workspace

	// Member is one loaded workspace member.
	Member = workspace.Member

	// Manifest is the validated model of a member's package.toml.
	Manifest = manifest.Manifest

	// Lockfile is the shared workspace lockfile.
	Lockfile = lock.File
)

// Re-export resolution and planning types
type (
	// Resolver resolves workspace dependencies against a registry index.
	Resolver = resolve.Resolver

	// Resolution is the outcome of resolving a whole workspace.
	Resolution = resolve.Resolution

	// Plan is the build plan for a resolved workspace.
	Plan = plan.Plan

	// Options maps profile option names to values.
	Options = profile.Options
)

// Re-export registry types
type (
	// Registry is the full registry contract: queries plus publish/yank.
	Registry = registry.Registry

	// Index is the read-only registry contract used by resolution.
	Index = registry.Index

	// Client is an HTTP client with retry logic for registry APIs.
	Client = client.Client

	// URLBuilder constructs URLs for a registry.
	URLBuilder = client.URLBuilder
)

// Re-export scope constants
const (
	Runtime     = core.Runtime
	Development = core.Development
	Build       = core.Build
)

// Re-export errors
var (
	ErrNotFound         = core.ErrNotFound
	ErrUnresolved       = core.ErrUnresolved
	ErrDuplicateVersion = core.ErrDuplicateVersion
	ErrNameCollision    = core.ErrNameCollision
)

// Error types
type (
	NotFoundError             = core.NotFoundError
	UnresolvedDependencyError = core.UnresolvedDependencyError
	DuplicateVersionError     = core.DuplicateVersionError
	NameCollisionError        = core.NameCollisionError
)

// Load reads a workspace root: workspace.toml, every member's
// package.toml, and the lockfile when present.
func Load(root string) (*Workspace, error) {
	return workspace.Load(root)
}

// NewResolver creates a resolver backed by the given registry index.
func NewResolver(index Index) *Resolver {
	return resolve.New(index)
}

// NewRegistry creates a registry for the given backend ("memory",
// "remote"). For "remote" the source is the registry base URL; for
// "memory" an optional snapshot path. If c is nil, DefaultClient() is
// used.
func NewRegistry(backend, source string, c *Client) (Registry, error) {
	return registry.New(backend, source, c)
}

// SupportedBackends returns all registered registry backend names.
func SupportedBackends() []string {
	return registry.SupportedBackends()
}

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 5 retries with exponential backoff
// - Retry on 429 and 5xx responses
func DefaultClient() *Client {
	return client.DefaultClient()
}

// MergeProfile produces the effective options for a profile: built-in
// defaults overlaid by the workspace override, then the package
// override.
func MergeProfile(name string, pkg, ws Options) Options {
	return profile.Merge(name, pkg, ws)
}

// ProfileDefaults returns the built-in options for a profile name.
func ProfileDefaults(name string) Options {
	return profile.Defaults(name)
}

// BuildPlan assembles the build plan for a resolved workspace. An empty
// profile name selects dev; only restricts the plan to the named
// members.
func BuildPlan(ws *Workspace, res *Resolution, profileName string, only []string) (*Plan, error) {
	return plan.Build(ws, res, profileName, only)
}

// WriteLockfile resolves nothing itself: it renders a resolution into
// the shared lockfile shape.
func WriteLockfile(ws *Workspace, res *Resolution) *Lockfile {
	return resolve.Lockfile(ws, res)
}

// ValidateLicense checks that a license string is a valid SPDX
// expression, e.g. "MIT" or "MIT OR Apache-2.0".
func ValidateLicense(expr string) error {
	return core.ValidateLicense(expr)
}

// Coordinate formats a package coordinate as a PURL, e.g.
// "pkg:cargo/rand@0.9.2".
func Coordinate(name, version string) string {
	return registry.Coordinate(name, version)
}

// ParseCoordinate parses a PURL or a bare "name@version" coordinate.
func ParseCoordinate(s string) (name, version string, err error) {
	return registry.ParseCoordinate(s)
}
