package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/lanes/pkg/commands/options"
	"tableflip.dev/lanes/pkg/runner/demo"
)

func addDemo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "replay the reference drag and lifecycle scenarios",
		Long: `Replays scripted drags, creates and deletes on a simulated clock and
prints the board after each one. Exits non-zero if any outcome differs from
the expected sequence.`,
		Example: `
lanes demo
lanes demo --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return output.HandleError(err)
			}
			d := demo.Demo{
				EntryTransition: s.cfg.EntryTransition,
				ExitTransition:  s.cfg.ExitTransition,
				JSON:            output.JSON,
				Out:             cmd.OutOrStdout(),
			}
			return output.HandleError(d.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
