package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Resolve options and write the requested build-system files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := options(cmd)
			if watch, _ := cmd.Flags().GetBool("watch"); watch {
				return c.app.Watch(cmd.Context(), opts)
			}
			return c.app.Generate(cmd.Context(), opts)
		},
	}
	addResolveFlags(cmd)
	cmd.Flags().StringSliceP("generators", "g", nil, "Generators to run: cmake_deps, cmake_toolchain, cmake_presets")
	cmd.Flags().BoolP("watch", "w", false, "Regenerate whenever the descriptor or profile changes")
	return cmd
}
