package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/lanes/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "serve the board over the Model Context Protocol on stdio",
		Long: `Launch an MCP server on stdin/stdout that exposes the board as resources
and the drag, drop, create and delete operations as tools. Logs go to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			logger, err := s.logger(os.Stderr)
			if err != nil {
				return err
			}
			opts, err := s.boardOptions()
			if err != nil {
				return err
			}
			journal, err := s.journal(logger, false)
			if err != nil {
				return err
			}
			runner := mcp.Runner{
				Options: opts,
				Journal: journal,
				Logger:  logger,
				Name:    "lanes",
				Version: version,
			}
			return runner.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
