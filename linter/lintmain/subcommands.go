package lintmain

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-lintpack/lintengine/linter/lintmain/internal/check"
	"github.com/go-lintpack/lintengine/linter/lintmain/internal/cmdutil"
	"github.com/go-lintpack/lintengine/linter/lintmain/internal/lintdoc"
)

// subCommands describes all supported sub-commands as well
// as their metadata required to run them and print useful help messages.
var subCommands = []*subCommand{
	{
		command: check.Command,
		short:   "run checks over specified packages",
	},
	{
		command: lintdoc.Command,
		short:   "print documentation of checks",
	},
	{
		command: versionCommand,
		short:   "print linter version",
	},
}

// subCommand is an implementation of a linter sub-command.
type subCommand struct {
	// command builds the sub-command bound to env.
	command func(env *cmdutil.Env) *cobra.Command

	// short describes command in one line of text.
	short string
}

func versionCommand(env *cmdutil.Env) *cobra.Command {
	return &cobra.Command{
		Use:  "version",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), env.Version)
			return err
		},
	}
}
