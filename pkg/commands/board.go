package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/lanes/pkg/commands/options"
	"tableflip.dev/lanes/pkg/lane"
	"tableflip.dev/lanes/pkg/runner/board"
)

func addBoard(topLevel *cobra.Command) {
	var (
		showID bool
		only   string
		empty  bool
	)
	cmd := &cobra.Command{
		Use:   "board",
		Short: "print the starter board",
		Example: `
lanes board
lanes board --lane pending --id
lanes board --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			b := board.Board{
				ShowID: showID,
				JSON:   output.JSON,
				Seed:   !empty,
				Out:    cmd.OutOrStdout(),
			}
			if only != "" {
				l, err := lane.Parse(only)
				if err != nil {
					return output.HandleError(err)
				}
				b.Lane = l
			}
			return output.HandleError(b.Do(cmd.Context()))
		},
	}
	cmd.Flags().BoolVar(&showID, "id", false, "Show card ids.")
	cmd.Flags().StringVar(&only, "lane", "", "Only print one lane: done, pending or not-done.")
	cmd.Flags().BoolVar(&empty, "empty", false, "Start from an empty board instead of the sample cards.")
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("lane", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return laneCompletions(), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func laneCompletions() []string {
	ids := make([]string, 0, len(lane.All()))
	for _, l := range lane.All() {
		ids = append(ids, l.String())
	}
	return ids
}
