// Package lintmain implements the command-line driver of linters
// built on lintengine.
//
// A linter binary imports its check packages for their
// lintengine.AddCheck side effects and calls Run.
package lintmain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/linter/lintmain/internal/cmdutil"
)

// Config is used to parametrize the linter.
type Config struct {
	// Name is the binary name used in help messages.
	Name string

	// Version is printed by the "version" sub-command.
	Version string

	// Registry holds the checks to run.
	// Defaults to lintengine.DefaultRegistry().
	Registry *lintengine.Registry
}

// Run executes corresponding sub-command and exits with its status.
// Does not return.
func Run(cfg Config) {
	os.Exit(Main(context.Background(), cfg, os.Args[1:], os.Stdout, os.Stderr))
}

// Main executes the sub-command selected by args and returns
// the process exit status.
//
// Findings make the status equal to the check --exit-code value;
// bad invocations, settings and load errors make it 2.
func Main(ctx context.Context, cfg Config, args []string, stdout, stderr io.Writer, extra ...*cobra.Command) int {
	root := NewCommand(cfg, stdout, stderr)
	root.AddCommand(extra...)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	var exit *cmdutil.ExitError
	switch {
	case err == nil:
		return cmdutil.ExitOK
	case errors.As(err, &exit):
		return exit.Code
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return cmdutil.ExitBadInvocation
	}
}

// NewCommand returns the root command with all sub-commands attached.
// Output goes to stdout, logs and errors go to stderr.
func NewCommand(cfg Config, stdout, stderr io.Writer) *cobra.Command {
	env := &cmdutil.Env{
		Name:     cfg.Name,
		Version:  cfg.Version,
		Registry: cfg.Registry,
		Log:      cmdutil.NewLogger(stderr),
	}
	if env.Name == "" {
		env.Name = "linter"
	}
	if env.Registry == nil {
		env.Registry = lintengine.DefaultRegistry()
	}

	var (
		verbose bool
		plugins []string
	)
	root := &cobra.Command{
		Use:           env.Name,
		Short:         "Run Go static checks",
		Version:       env.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				env.Log.SetLevel(logrus.DebugLevel)
			}
			return loadPlugins(env.Registry, plugins, env.Log)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVar(&verbose, "verbose", false,
		`log engine events`)
	root.PersistentFlags().StringArrayVar(&plugins, "plugin", nil,
		`load checks from a Go plugin (may be repeated)`)

	for _, sub := range subCommands {
		cmd := sub.command(env)
		cmd.Short = sub.short
		root.AddCommand(cmd)
	}
	return root
}
