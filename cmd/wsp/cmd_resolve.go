package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/workspaces/internal/lock"
	"github.com/git-pkgs/workspaces/internal/resolve"
	"github.com/git-pkgs/workspaces/internal/workspace"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Resolve workspace dependencies and write the lockfile",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
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

			lockPath := filepath.Join(ws.Root, lock.FileName)
			if err := lock.Save(lockPath, resolve.Lockfile(ws, res)); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range sortedKeys(res.External) {
				pin := res.External[name]
				fmt.Fprintf(out, "%s %s (%s)\n", name, pin.Version, pin.Source)
			}
			fmt.Fprintf(out, "wrote %s\n", lockPath)
			return nil
		},
	}
}

func sortedKeys(m map[string]resolve.Pinned) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
