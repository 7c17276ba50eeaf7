package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/lanes/pkg/commands/options"
	"tableflip.dev/lanes/pkg/runner/lanes"
)

func addLanes(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "lanes",
		Short: "print the lane order and transition durations",
		Example: `
lanes lanes
lanes lanes --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return output.HandleError(err)
			}
			l := lanes.Lanes{
				EntryTransition: s.cfg.EntryTransition,
				ExitTransition:  s.cfg.ExitTransition,
				JSON:            output.JSON,
				Out:             cmd.OutOrStdout(),
			}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
