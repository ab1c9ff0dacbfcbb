package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/workspaces/internal/core"
	"github.com/git-pkgs/workspaces/internal/workspace"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check workspace consistency without touching the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			ws, err := workspace.Load(root)
			if err != nil {
				return err
			}

			var problems []string
			for _, m := range ws.Members {
				problems = append(problems, checkMember(ws, m)...)
			}
			problems = append(problems, checkLock(ws)...)

			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintf(out, "ok: %d members verified\n", len(ws.Members))
				return nil
			}
			for _, p := range problems {
				fmt.Fprintf(out, "problem: %s\n", p)
			}
			return fmt.Errorf("%d problems found", len(problems))
		},
	}
}

func checkMember(ws *workspace.Workspace, m *workspace.Member) []string {
	var problems []string
	// License is optional; only a declared expression is validated.
	if license := m.Manifest.Package.License; license != "" {
		if err := core.ValidateLicense(license); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", m.Name(), err))
		}
	}
	for _, dep := range m.Manifest.Dependencies {
		if !dep.IsLocal() {
			continue
		}
		dir := filepath.Clean(filepath.Join(m.Dir, dep.Path))
		target, ok := ws.MemberByDir(dir)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: dependency %s points at %s, not a workspace member", m.Name(), dep.Name, dir))
			continue
		}
		if target.Name() != dep.Name {
			problems = append(problems, fmt.Sprintf("%s: dependency %s points at member %s", m.Name(), dep.Name, target.Name()))
		}
	}
	return problems
}

// checkLock flags external dependencies missing from the lockfile. A
// missing lockfile is not an error, resolve creates it on demand.
func checkLock(ws *workspace.Workspace) []string {
	if ws.Lock == nil {
		return nil
	}
	var problems []string
	for _, m := range ws.Members {
		for _, dep := range m.Manifest.Dependencies {
			if dep.IsLocal() {
				continue
			}
			if _, ok := ws.Lock.Get(dep.Name); !ok {
				problems = append(problems, fmt.Sprintf("%s: dependency %s is not in the lockfile", m.Name(), dep.Name))
			}
		}
	}
	return problems
}
