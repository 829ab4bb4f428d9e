// Package commands implements the CLI commands for kiln.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
)

// CLI represents the command line interface for kiln.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Generate(ctx context.Context, opts app.Options) error
	Watch(ctx context.Context, opts app.Options) error
	Options(opts app.Options) error
	Validate(opts app.Options) error
	Clean(opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "kiln",
		Short:         "Turn a package descriptor into CMake dependency and toolchain files",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	pf := rootCmd.PersistentFlags()
	pf.StringP("file", "f", "", "Path to the package descriptor (default: nearest kiln.yaml)")
	pf.String("profile", "", "Path to a tool profile (default: .kiln/profile.yaml)")
	pf.String("output-folder", "", "Folder the generated files are written to")
	pf.String("deps-root", "", "Root folder dependency prefixes are derived from")
	pf.String("log-format", "", "Log format: pretty or json")
	pf.String("output", "", "Output mode: auto, rich, plain or ci")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newOptionsCmd())
	rootCmd.AddCommand(c.newValidateCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// addResolveFlags registers the flags that change how options and settings resolve.
func addResolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("option", "o", nil, "Override a dependency option (dep:key=value), repeatable")
	cmd.Flags().StringArrayP("setting", "s", nil, "Override a settings axis (axis=value), repeatable")
	cmd.Flags().Bool("strict", false, "Fail when overrides of the same option disagree")
}

// options collects app.Options from the parsed flags of cmd.
func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	file, _ := flags.GetString("file")
	profilePath, _ := flags.GetString("profile")

	opts := app.Options{
		File:    file,
		Profile: profilePath,
		Flags:   flags,
	}
	if flags.Lookup("option") != nil {
		opts.Overrides, _ = flags.GetStringArray("option")
		opts.Settings, _ = flags.GetStringArray("setting")
	}
	return opts
}
