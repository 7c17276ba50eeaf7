package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/lanes/pkg/commands/options"
)

var (
	output  = &options.OutputOptions{}
	verbose bool
)

// New builds the lanes root command.
func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "lanes",
		Short: base.Wrap80("A three-lane task board: drag cards between Done, Pending and Not Done."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level.")

	AddCommands(cmd)
	return cmd
}

// AddCommands attaches every subcommand to topLevel.
func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addBoard(topLevel)
	addLanes(topLevel)
	addDemo(topLevel)
	addJournal(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
