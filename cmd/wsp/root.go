package main

import (
	"github.com/spf13/cobra"

	"github.com/git-pkgs/workspaces/client"
	"github.com/git-pkgs/workspaces/internal/registry"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wsp",
		Short:   "Workspace build and publish tool",
		Version: version,
	}

	cmd.PersistentFlags().String("root", ".", "Workspace root directory")
	cmd.PersistentFlags().String("backend", "memory", "Registry backend (memory, remote)")
	cmd.PersistentFlags().String("registry", "", "Registry source: base URL for remote, snapshot path for memory")

	cmd.AddCommand(
		newBuildCmd(),
		newResolveCmd(),
		newFetchCmd(),
		newPublishCmd(),
		newYankCmd(),
		newUnyankCmd(),
		newVerifyCmd(),
	)

	return cmd
}

// openRegistry builds the registry selected by the persistent flags.
func openRegistry(cmd *cobra.Command) (registry.Registry, error) {
	backend, _ := cmd.Flags().GetString("backend")
	source, _ := cmd.Flags().GetString("registry")
	return registry.New(backend, source, client.DefaultClient())
}
