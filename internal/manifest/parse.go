package manifest

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/git-pkgs/workspaces/internal/core"
	"github.com/git-pkgs/workspaces/internal/profile"
)

// ManifestFile is the file name of a member manifest.
const ManifestFile = "package.toml"

// WorkspaceFile is the file name of the root workspace declaration.
const WorkspaceFile = "workspace.toml"

// LoadManifest reads and validates a package.toml.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses and validates package.toml content.
func ParseManifest(data []byte) (*Manifest, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing manifest TOML: %w", err)
	}
	if f.Package == nil {
		return nil, fmt.Errorf("manifest: [package] section is required")
	}

	m := &Manifest{
		Package: core.Package{
			Name:        f.Package.Name,
			Version:     f.Package.Version,
			Edition:     f.Package.Edition,
			Description: f.Package.Description,
			License:     f.Package.License,
			Homepage:    f.Package.Homepage,
			Repository:  f.Package.Repository,
			Keywords:    f.Package.Keywords,
		},
		Profiles: profiles(f.Profile),
	}

	for scope, section := range map[core.Scope]map[string]any{
		core.Runtime:     f.Dependencies,
		core.Development: f.DevDependencies,
		core.Build:       f.BuildDependencies,
	} {
		deps, err := dependencies(section, scope)
		if err != nil {
			return nil, err
		}
		m.Dependencies = append(m.Dependencies, deps...)
	}
	sort.Slice(m.Dependencies, func(i, j int) bool {
		return m.Dependencies[i].Name < m.Dependencies[j].Name
	})

	if err := validateManifest(m); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadWorkspace reads and validates a workspace.toml.
func LoadWorkspace(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workspace file: %w", err)
	}
	return ParseWorkspace(data)
}

// ParseWorkspace parses and validates workspace.toml content.
func ParseWorkspace(data []byte) (*Workspace, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing workspace TOML: %w", err)
	}
	if f.Workspace == nil {
		return nil, fmt.Errorf("workspace: [workspace] section is required")
	}

	ws := &Workspace{
		Members:   f.Workspace.Members,
		TargetDir: f.Workspace.TargetDir,
		Profiles:  profiles(f.Profile),
	}
	if ws.TargetDir == "" {
		ws.TargetDir = "target"
	}

	if err := validateWorkspace(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func profiles(raw map[string]map[string]any) map[string]profile.Options {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]profile.Options, len(raw))
	for name, opts := range raw {
		out[name] = profile.Options(opts)
	}
	return out
}

// dependencies coerces a raw [dependencies] table. An entry is either a
// constraint string ("0.9.0") or an inline table with version or path.
func dependencies(raw map[string]any, scope core.Scope) ([]core.Dependency, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	deps := make([]core.Dependency, 0, len(raw))
	for name, value := range raw {
		dep := core.Dependency{Name: name, Scope: scope}
		switch v := value.(type) {
		case string:
			dep.Constraint = v
		case map[string]any:
			if s, ok := v["version"].(string); ok {
				dep.Constraint = s
			}
			if s, ok := v["path"].(string); ok {
				dep.Path = s
			}
			if b, ok := v["optional"].(bool); ok {
				dep.Optional = b
			}
		default:
			return nil, fmt.Errorf("manifest: dependency %s: expected string or table, got %T", name, value)
		}
		deps = append(deps, dep)
	}
	return deps, nil
}
