package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/workspaces/internal/core"
	"github.com/git-pkgs/workspaces/internal/manifest"
	"github.com/git-pkgs/workspaces/internal/registry"
	"github.com/git-pkgs/workspaces/internal/workspace"
)

func newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a workspace member to the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			name, _ := cmd.Flags().GetString("package")
			owner, _ := cmd.Flags().GetString("owner")

			ws, err := workspace.Load(root)
			if err != nil {
				return err
			}
			member, ok := ws.MemberByName(name)
			if !ok {
				return &core.NotFoundError{Name: name}
			}

			reg, err := openRegistry(cmd)
			if err != nil {
				return err
			}

			pub := core.Publication{
				Name:        member.Manifest.Package.Name,
				Version:     member.Manifest.Package.Version,
				License:     member.Manifest.Package.License,
				Description: member.Manifest.Package.Description,
				Owner:       owner,
				Integrity:   manifestIntegrity(ws, member),
			}
			if err := reg.Publish(cmd.Context(), pub); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "published %s\n", registry.Coordinate(pub.Name, pub.Version))
			return nil
		},
	}

	cmd.Flags().StringP("package", "p", "", "Member to publish")
	cmd.Flags().String("owner", "", "Publishing owner")
	cmd.MarkFlagRequired("package")
	return cmd
}

// manifestIntegrity hashes the member's manifest file. A real package
// archive would be hashed instead once packaging lands.
func manifestIntegrity(ws *workspace.Workspace, member *workspace.Member) string {
	data, err := os.ReadFile(filepath.Join(ws.MemberDir(member), manifest.ManifestFile))
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return "sha256-" + hex.EncodeToString(sum[:])
}
