package resolve

import (
	"fmt"

	"github.com/git-pkgs/workspaces/internal/lock"
	"github.com/git-pkgs/workspaces/internal/workspace"
)

// Lockfile builds the shared lockfile for a resolved workspace: one
// entry per member and one per unified external package.
func Lockfile(ws *workspace.Workspace, res *Resolution) *lock.File {
	f := &lock.File{Version: lock.CurrentVersion}

	for _, m := range ws.Members {
		entry := lock.Package{
			Name:    m.Name(),
			Version: m.Manifest.Package.Version,
		}
		for _, dep := range res.Members[m.Name()] {
			entry.Dependencies = append(entry.Dependencies, fmt.Sprintf("%s %s", dep.Name, dep.Version))
		}
		f.Packages = append(f.Packages, entry)
	}

	for name, pin := range res.External {
		f.Packages = append(f.Packages, lock.Package{
			Name:      name,
			Version:   pin.Version,
			Source:    pin.Source,
			Integrity: pin.Integrity,
		})
	}

	return f
}
