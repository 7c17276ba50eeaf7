package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/lanes/pkg/commands/options"
	"tableflip.dev/lanes/pkg/runner/journal"
)

func addJournal(topLevel *cobra.Command) {
	var (
		all    bool
		follow bool
	)
	cmd := &cobra.Command{
		Use:   "journal [session]",
		Short: "inspect recorded board changes",
		Long: `Lists the sessions recorded while journaling is enabled, or prints the
board snapshots of one session.`,
		Example: `
lanes journal
lanes journal 2f1c... --all
lanes journal --follow
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return output.HandleError(err)
			}
			logger, err := s.logger(os.Stderr)
			if err != nil {
				return output.HandleError(err)
			}
			j, err := s.journal(logger, true)
			if err != nil {
				return output.HandleError(err)
			}
			r := journal.Journal{
				Journal: j,
				All:     all,
				Follow:  follow,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				r.Session = args[0]
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Print every snapshot in the session, not just the latest.")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing snapshots as they are recorded.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
