package commands

import "github.com/spf13/cobra"

func (c *CLI) newOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print the resolved option of every dependency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Options(options(cmd))
		},
	}
	addResolveFlags(cmd)
	return cmd
}

func (c *CLI) newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the descriptor, options and settings without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Validate(options(cmd))
		},
	}
	addResolveFlags(cmd)
	cmd.Flags().StringSliceP("generators", "g", nil, "Generators to check")
	return cmd
}
