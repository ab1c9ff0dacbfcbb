package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/workspaces/fetch"
	"github.com/git-pkgs/workspaces/internal/workspace"
)

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download locked external packages into the target directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			ws, err := workspace.Load(root)
			if err != nil {
				return err
			}
			if ws.Lock == nil {
				return fmt.Errorf("no lockfile at %s, run resolve first", ws.LockPath)
			}

			reg, err := openRegistry(cmd)
			if err != nil {
				return err
			}

			cacheDir := filepath.Join(ws.Root, ws.TargetDir, "packages")
			if err := os.MkdirAll(cacheDir, 0o755); err != nil {
				return err
			}

			f := fetch.NewCircuitBreakerFetcher(fetch.NewFetcher())
			out := cmd.OutOrStdout()
			for _, entry := range ws.Lock.Packages {
				if entry.Source == "" {
					continue // workspace member, nothing to download
				}
				data, err := f.FetchLocked(cmd.Context(), reg.URLs(), entry)
				if err != nil {
					return fmt.Errorf("fetching %s %s: %w", entry.Name, entry.Version, err)
				}
				dest := filepath.Join(cacheDir, fmt.Sprintf("%s-%s.crate", entry.Name, entry.Version))
				if err := os.WriteFile(dest, data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(out, "fetched %s %s (%d bytes)\n", entry.Name, entry.Version, len(data))
			}
			return nil
		},
	}
}
