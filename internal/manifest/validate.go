package manifest

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/git-pkgs/workspaces/internal/core"
)

// Package names follow the registry convention: leading letter, then
// letters, digits, hyphens and underscores.
var namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

var knownEditions = map[string]bool{
	"2015": true,
	"2018": true,
	"2021": true,
	"2024": true,
}

func validateManifest(m *Manifest) error {
	p := m.Package
	if p.Name == "" {
		return fmt.Errorf("manifest: package.name is required")
	}
	if !namePattern.MatchString(p.Name) {
		return fmt.Errorf("manifest: invalid package name %q", p.Name)
	}
	if p.Version == "" {
		return fmt.Errorf("manifest: package.version is required")
	}
	if _, err := core.ParseVersion(p.Version); err != nil {
		return fmt.Errorf("manifest: package %s: %w", p.Name, err)
	}
	if p.Edition != "" && !knownEditions[p.Edition] {
		return fmt.Errorf("manifest: package %s: unknown edition %q", p.Name, p.Edition)
	}
	if p.License != "" {
		if err := core.ValidateLicense(p.License); err != nil {
			return fmt.Errorf("manifest: package %s: %w", p.Name, err)
		}
	}

	seen := make(map[string]core.Scope, len(m.Dependencies))
	for _, d := range m.Dependencies {
		if err := validateDependency(p.Name, d); err != nil {
			return err
		}
		if prev, ok := seen[d.Name]; ok && prev == d.Scope {
			return fmt.Errorf("manifest: package %s: duplicate dependency %q", p.Name, d.Name)
		}
		seen[d.Name] = d.Scope
	}
	return nil
}

func validateDependency(pkg string, d core.Dependency) error {
	if !namePattern.MatchString(d.Name) {
		return fmt.Errorf("manifest: package %s: invalid dependency name %q", pkg, d.Name)
	}
	switch {
	case d.Path != "" && d.Constraint != "":
		return fmt.Errorf("manifest: package %s: dependency %s declares both path and version", pkg, d.Name)
	case d.Path == "" && d.Constraint == "":
		return fmt.Errorf("manifest: package %s: dependency %s declares neither path nor version", pkg, d.Name)
	case d.Path != "":
		// Dependency paths are member-relative, so a sibling reference
		// like "../add_one" starts with "..". Whether the target is a
		// workspace member is decided at resolution, where the member
		// directory is known.
		if filepath.IsAbs(d.Path) {
			return fmt.Errorf("manifest: package %s: dependency %s: absolute path is not allowed: %s", pkg, d.Name, d.Path)
		}
	default:
		if _, err := core.ParseConstraint(d.Constraint); err != nil {
			return fmt.Errorf("manifest: package %s: dependency %s: %w", pkg, d.Name, err)
		}
	}
	return nil
}

func validateWorkspace(ws *Workspace) error {
	if len(ws.Members) == 0 {
		return fmt.Errorf("workspace: members is required")
	}
	seen := make(map[string]bool, len(ws.Members))
	for i, m := range ws.Members {
		if m == "" {
			return fmt.Errorf("workspace: members[%d] is empty", i)
		}
		if err := validateRelPath(m, fmt.Sprintf("members[%d]", i)); err != nil {
			return err
		}
		clean := filepath.Clean(m)
		if seen[clean] {
			return fmt.Errorf("workspace: duplicate member %q", m)
		}
		seen[clean] = true
	}
	return validateRelPath(ws.TargetDir, "target-dir")
}

// validateRelPath ensures a path stays inside the workspace.
func validateRelPath(p, label string) error {
	if filepath.IsAbs(p) {
		return fmt.Errorf("workspace: %s: absolute path is not allowed: %s", label, p)
	}
	clean := filepath.Clean(p)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("workspace: %s: path escapes the workspace: %s", label, p)
	}
	return nil
}
