// Package resolve turns declared dependencies into concrete package
// references: local references against workspace members, external
// references against a registry index.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/git-pkgs/workspaces/internal/core"
	"github.com/git-pkgs/workspaces/internal/registry"
	"github.com/git-pkgs/workspaces/internal/workspace"
)

// Resolver resolves workspace dependencies against one registry index.
type Resolver struct {
	index registry.Index
}

// New creates a resolver backed by the given registry index.
func New(index registry.Index) *Resolver {
	return &Resolver{index: index}
}

// Pinned is the single version an external package was unified to.
type Pinned struct {
	Version   string
	Integrity string
	Source    string // "registry+<host>"
}

// Resolution is the outcome of resolving a whole workspace.
type Resolution struct {
	// Members maps a member package name to its resolved dependencies,
	// sorted by dependency name.
	Members map[string][]core.ResolvedDependency

	// External maps an external package name to its pinned version.
	// Every member shares these pins, so one lockfile stays consistent.
	External map[string]Pinned
}

// constraintUse records one member's declared constraint on an external
// package.
type constraintUse struct {
	member     string
	raw        string
	constraint *semver.Constraints
}

// Workspace resolves every member's dependency list. All members are
// resolved together: each external package is unified to one version
// satisfying every declared constraint.
func (r *Resolver) Workspace(ctx context.Context, ws *workspace.Workspace) (*Resolution, error) {
	res := &Resolution{
		Members:  make(map[string][]core.ResolvedDependency, len(ws.Members)),
		External: make(map[string]Pinned),
	}

	uses := make(map[string][]constraintUse)
	for _, m := range ws.Members {
		for _, dep := range m.Manifest.Dependencies {
			if dep.IsLocal() {
				resolved, err := r.local(ws, m, dep)
				if err != nil {
					return nil, err
				}
				res.Members[m.Name()] = append(res.Members[m.Name()], resolved)
				continue
			}
			c, err := core.ParseConstraint(dep.Constraint)
			if err != nil {
				return nil, &core.UnresolvedDependencyError{
					Package:    m.Name(),
					Dependency: dep.Name,
					Constraint: dep.Constraint,
					Reason:     err.Error(),
				}
			}
			uses[dep.Name] = append(uses[dep.Name], constraintUse{
				member:     m.Name(),
				raw:        dep.Constraint,
				constraint: c,
			})
		}
	}

	names := make([]string, 0, len(uses))
	for name := range uses {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pinned, err := r.unify(ctx, ws, name, uses[name])
		if err != nil {
			return nil, err
		}
		res.External[name] = pinned
	}

	// Attach the unified external pins to each member that declared them.
	for _, m := range ws.Members {
		for _, dep := range m.Manifest.Dependencies {
			if dep.IsLocal() {
				continue
			}
			pin := res.External[dep.Name]
			res.Members[m.Name()] = append(res.Members[m.Name()], core.ResolvedDependency{
				Name:    dep.Name,
				Version: pin.Version,
			})
		}
		deps := res.Members[m.Name()]
		sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
		res.Members[m.Name()] = deps
	}

	return res, nil
}

// Member resolves one member's dependency list. The member is resolved
// in its workspace context so external pins stay unified.
func (r *Resolver) Member(ctx context.Context, ws *workspace.Workspace, name string) ([]core.ResolvedDependency, error) {
	if _, ok := ws.MemberByName(name); !ok {
		return nil, &core.NotFoundError{Name: name}
	}
	res, err := r.Workspace(ctx, ws)
	if err != nil {
		return nil, err
	}
	return res.Members[name], nil
}

// local resolves a path reference to a sibling workspace member.
func (r *Resolver) local(ws *workspace.Workspace, m *workspace.Member, dep core.Dependency) (core.ResolvedDependency, error) {
	dir := filepath.Clean(filepath.Join(m.Dir, dep.Path))
	target, ok := ws.MemberByDir(dir)
	if !ok {
		return core.ResolvedDependency{}, &core.UnresolvedDependencyError{
			Package:    m.Name(),
			Dependency: dep.Name,
			Reason:     fmt.Sprintf("path %s is not a workspace member", dep.Path),
		}
	}
	if target.Name() != dep.Name {
		return core.ResolvedDependency{}, &core.UnresolvedDependencyError{
			Package:    m.Name(),
			Dependency: dep.Name,
			Reason:     fmt.Sprintf("path %s declares package %q", dep.Path, target.Name()),
		}
	}
	return core.ResolvedDependency{
		Name:    target.Name(),
		Version: target.Manifest.Package.Version,
		Local:   true,
		Dir:     dir,
	}, nil
}

// unify picks the single version of an external package that satisfies
// every member's constraint. A version already pinned in the lockfile
// is kept while it still satisfies all constraints, even if it has been
// yanked since.
func (r *Resolver) unify(ctx context.Context, ws *workspace.Workspace, name string, uses []constraintUse) (Pinned, error) {
	pubs, err := r.index.Versions(ctx, name)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return Pinned{}, &core.UnresolvedDependencyError{
				Package:    uses[0].member,
				Dependency: name,
				Constraint: uses[0].raw,
				Reason:     "package not found in registry",
			}
		}
		return Pinned{}, err
	}

	var locked string
	if ws.Lock != nil {
		if entry, ok := ws.Lock.Get(name); ok {
			locked = entry.Version
		}
	}

	byVersion := make(map[string]core.Publication, len(pubs))
	var candidates []string
	for _, p := range pubs {
		byVersion[p.Version] = p
		if !p.Yanked || p.Version == locked {
			candidates = append(candidates, p.Version)
		}
	}
	if _, ok := byVersion[locked]; !ok {
		locked = ""
	}

	satisfiesAll := func(version string) bool {
		v, err := semver.NewVersion(version)
		if err != nil {
			return false
		}
		for _, u := range uses {
			if !u.constraint.Check(v) {
				return false
			}
		}
		return true
	}

	if locked != "" && satisfiesAll(locked) {
		return r.pin(byVersion[locked]), nil
	}

	var satisfying []string
	for _, v := range candidates {
		if satisfiesAll(v) {
			satisfying = append(satisfying, v)
		}
	}
	if len(satisfying) == 0 {
		return Pinned{}, &core.UnresolvedDependencyError{
			Package:    uses[0].member,
			Dependency: name,
			Constraint: constraintSummary(uses),
			Reason:     "no published version satisfies every workspace constraint",
		}
	}

	// Highest satisfying version wins.
	best, _ := core.MaxSatisfying(satisfying, uses[0].constraint)
	return r.pin(byVersion[best]), nil
}

func (r *Resolver) pin(p core.Publication) Pinned {
	return Pinned{
		Version:   p.Version,
		Integrity: p.Integrity,
		Source:    "registry+" + r.index.Host(),
	}
}

func constraintSummary(uses []constraintUse) string {
	out := ""
	for i, u := range uses {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s from %s", u.raw, u.member)
	}
	return out
}
