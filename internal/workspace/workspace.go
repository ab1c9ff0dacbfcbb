package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/git-pkgs/workspaces/internal/lock"
	"github.com/git-pkgs/workspaces/internal/manifest"
	"github.com/git-pkgs/workspaces/internal/profile"
)

// Workspace holds the resolved paths, the loaded member manifests and
// the lockfile (if one exists) for a workspace root.
type Workspace struct {
	Root      string
	TargetDir string
	Members   []*Member // declaration order
	Profiles  map[string]profile.Options
	Lock      *lock.File // may be nil
	LockPath  string
}

// Member is one loaded workspace member.
type Member struct {
	Dir      string // workspace-relative directory
	Manifest *manifest.Manifest
}

// Name returns the member's package name.
func (m *Member) Name() string {
	return m.Manifest.Package.Name
}

// Load reads workspace.toml at root, then every member's package.toml,
// and attaches the lockfile when present. A package belongs to at most
// one workspace, so member directories are taken relative to root only.
func Load(root string) (*Workspace, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	decl, err := manifest.LoadWorkspace(filepath.Join(root, manifest.WorkspaceFile))
	if err != nil {
		return nil, err
	}

	ws := &Workspace{
		Root:      root,
		TargetDir: decl.TargetDir,
		Profiles:  decl.Profiles,
		LockPath:  filepath.Join(root, lock.FileName),
	}

	seen := make(map[string]string, len(decl.Members))
	for _, dir := range decl.Members {
		dir = filepath.Clean(dir)
		m, err := manifest.LoadManifest(filepath.Join(root, dir, manifest.ManifestFile))
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", dir, err)
		}
		name := m.Package.Name
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("workspace: members %s and %s both declare package %q", prev, dir, name)
		}
		seen[name] = dir
		ws.Members = append(ws.Members, &Member{Dir: dir, Manifest: m})
	}

	if _, statErr := os.Stat(ws.LockPath); statErr == nil {
		lf, err := lock.Load(ws.LockPath)
		if err != nil {
			return nil, err
		}
		ws.Lock = lf
	}

	return ws, nil
}

// MemberByName returns the member declaring the given package name.
func (w *Workspace) MemberByName(name string) (*Member, bool) {
	for _, m := range w.Members {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// MemberByDir returns the member at the given workspace-relative
// directory.
func (w *Workspace) MemberByDir(dir string) (*Member, bool) {
	dir = filepath.Clean(dir)
	for _, m := range w.Members {
		if m.Dir == dir {
			return m, true
		}
	}
	return nil, false
}

// MemberDir returns the absolute path of a member's directory.
func (w *Workspace) MemberDir(m *Member) string {
	return filepath.Join(w.Root, m.Dir)
}
