package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/workspaces/internal/plan"
	"github.com/git-pkgs/workspaces/internal/resolve"
	"github.com/git-pkgs/workspaces/internal/workspace"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compute the build plan for the workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			profileName, _ := cmd.Flags().GetString("profile")
			only, _ := cmd.Flags().GetStringArray("package")
			asJSON, _ := cmd.Flags().GetBool("json")

			ws, err := workspace.Load(root)
			if err != nil {
				return err
			}

			reg, err := openRegistry(cmd)
			if err != nil {
				return err
			}

			res, err := resolve.New(reg).Workspace(cmd.Context(), ws)
			if err != nil {
				return err
			}

			p, err := plan.Build(ws, res, profileName, only)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}

			fmt.Fprintf(out, "profile %s, target %s\n", p.Profile, p.TargetDir)
			for _, unit := range p.Units {
				fmt.Fprintf(out, "  %s %s (edition %s, opt-level %v)\n",
					unit.Package, unit.Version, unit.Edition, unit.Options["opt-level"])
				deps := depNames(unit)
				sort.Strings(deps)
				for _, d := range deps {
					fmt.Fprintf(out, "    %s\n", d)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("profile", "dev", "Build profile to apply")
	cmd.Flags().StringArrayP("package", "p", nil, "Restrict the plan to the named members (repeatable)")
	cmd.Flags().Bool("json", false, "Emit the plan as JSON")
	return cmd
}

func depNames(unit plan.Unit) []string {
	names := make([]string, 0, len(unit.Dependencies))
	for _, dep := range unit.Dependencies {
		names = append(names, fmt.Sprintf("%s %s", dep.Name, dep.Version))
	}
	return names
}
