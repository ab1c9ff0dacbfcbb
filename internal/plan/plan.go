// Package plan assembles a build plan for a resolved workspace: one
// unit per selected member, carrying its effective profile options and
// resolved dependencies.
package plan

import (
	"github.com/git-pkgs/workspaces/internal/core"
	"github.com/git-pkgs/workspaces/internal/profile"
	"github.com/git-pkgs/workspaces/internal/resolve"
	"github.com/git-pkgs/workspaces/internal/workspace"
)

// Plan is what the build tool would execute. This tool stops at the
// plan; compiling members is out of scope.
type Plan struct {
	Profile   string
	TargetDir string
	Units     []Unit
}

// Unit is one member scheduled for building.
type Unit struct {
	Package      string
	Version      string
	Dir          string // workspace-relative
	Edition      string
	Options      profile.Options
	Dependencies []core.ResolvedDependency
}

// Build assembles the plan for a profile. An empty profile name selects
// dev. only restricts the plan to the named members; empty means all.
func Build(ws *workspace.Workspace, res *resolve.Resolution, profileName string, only []string) (*Plan, error) {
	if profileName == "" {
		profileName = profile.Dev
	}

	selected := ws.Members
	if len(only) > 0 {
		selected = selected[:0:0]
		for _, name := range only {
			m, ok := ws.MemberByName(name)
			if !ok {
				return nil, &core.NotFoundError{Name: name}
			}
			selected = append(selected, m)
		}
	}

	p := &Plan{Profile: profileName, TargetDir: ws.TargetDir}
	for _, m := range selected {
		p.Units = append(p.Units, Unit{
			Package:      m.Name(),
			Version:      m.Manifest.Package.Version,
			Dir:          m.Dir,
			Edition:      m.Manifest.Package.Edition,
			Options:      profile.Merge(profileName, m.Manifest.Profiles[profileName], ws.Profiles[profileName]),
			Dependencies: res.Members[m.Name()],
		})
	}
	return p, nil
}
