package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/workspaces/internal/registry"
)

func newYankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "yank <name@version | purl>",
		Short: "Mark a published version as yanked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setYanked(cmd, args[0], true)
		},
	}
}

func newUnyankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unyank <name@version | purl>",
		Short: "Clear the yanked flag on a published version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setYanked(cmd, args[0], false)
		},
	}
}

func setYanked(cmd *cobra.Command, coordinate string, yanked bool) error {
	name, version, err := registry.ParseCoordinate(coordinate)
	if err != nil {
		return err
	}
	if version == "" {
		return fmt.Errorf("coordinate %q has no version", coordinate)
	}

	reg, err := openRegistry(cmd)
	if err != nil {
		return err
	}

	if yanked {
		err = reg.Yank(cmd.Context(), name, version)
	} else {
		err = reg.Unyank(cmd.Context(), name, version)
	}
	if err != nil {
		return err
	}

	verb := "yanked"
	if !yanked {
		verb = "unyanked"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, registry.Coordinate(name, version))
	return nil
}
