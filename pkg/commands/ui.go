package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/lanes/pkg/config"
	"tableflip.dev/lanes/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive board",
		Example: `
lanes ui
LANES_THEME=dark lanes ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			logger, closer, err := config.NewFileLogger(s.cfg.Log)
			if err != nil {
				return err
			}
			defer closer.Close()

			opts, err := s.boardOptions()
			if err != nil {
				return err
			}
			journal, err := s.journal(logger, false)
			if err != nil {
				return err
			}
			u := ui.UI{
				Config:  s.cfg,
				Options: opts,
				Journal: journal,
				Logger:  logger,
				Viper:   s.v,
			}
			return u.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
