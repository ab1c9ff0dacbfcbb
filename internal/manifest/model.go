// Package manifest loads and validates package manifests (package.toml)
// and the workspace declaration (workspace.toml).
package manifest

import (
	"github.com/git-pkgs/workspaces/internal/core"
	"github.com/git-pkgs/workspaces/internal/profile"
)

// Manifest is the validated model of one member's package.toml.
type Manifest struct {
	Package      core.Package
	Dependencies []core.Dependency // sorted by name
	Profiles     map[string]profile.Options
}

// Workspace is the validated model of the root workspace.toml.
type Workspace struct {
	Members   []string // member directories in declaration order
	TargetDir string   // shared output directory, default "target"
	Profiles  map[string]profile.Options
}

// Raw TOML shapes. Dependency tables are decoded as map[string]any
// because an entry is either a bare constraint string or an inline
// table with version/path/optional keys.
type file struct {
	Package           *packageSection           `toml:"package"`
	Workspace         *workspaceSection         `toml:"workspace"`
	Dependencies      map[string]any            `toml:"dependencies"`
	DevDependencies   map[string]any            `toml:"dev-dependencies"`
	BuildDependencies map[string]any            `toml:"build-dependencies"`
	Profile           map[string]map[string]any `toml:"profile"`
}

type packageSection struct {
	Name        string   `toml:"name"`
	Version     string   `toml:"version"`
	Edition     string   `toml:"edition"`
	Description string   `toml:"description"`
	License     string   `toml:"license"`
	Homepage    string   `toml:"homepage"`
	Repository  string   `toml:"repository"`
	Keywords    []string `toml:"keywords"`
}

type workspaceSection struct {
	Members   []string `toml:"members"`
	TargetDir string   `toml:"target-dir"`
}
