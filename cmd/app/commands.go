package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiagokriok/taskboard/internal/domain"
	"github.com/tiagokriok/taskboard/internal/infrastructure/boardfile"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [board-file]",
		Short: "Check a YAML board definition",
		Long: `Load a board file and check it the same way the TUI does at startup:
- every column has a unique id and a #RRGGBB color
- max_tasks is not negative
- every task has a title and a unique id`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.BoardFile = args[0]
			}
			if cfg.BoardFile == "" {
				return fmt.Errorf("no board file given (pass one or use --board)")
			}

			s, err := openSession(cmd.Context(), cfg, newStderrLogger(cfg))
			if err != nil {
				return err
			}

			board := s.bootstrap.Board
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d columns, %d tasks)\n", cfg.BoardFile, len(board.Columns), board.TaskCount())
			for _, col := range board.Columns {
				if col.OverLimit() {
					fmt.Fprintf(cmd.OutOrStdout(), "  warning: %s holds %d tasks over a limit of %d\n", col.ID, len(col.TaskIDs), *col.MaxTasks)
				}
			}
			return nil
		},
	}
}

func newDumpCmd(opts *rootOptions) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the board as YAML",
		Long:  "Print the board, or the tasks whose title matches --search, in board-file form.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), cfg, newStderrLogger(cfg))
			if err != nil {
				return err
			}

			board := s.service.Snapshot(cmd.Context())
			var visible map[string][]domain.Task
			if search != "" {
				visible = s.service.View(cmd.Context(), search)
			}
			return boardfile.Encode(cmd.OutOrStdout(), boardfile.FromBoard(board, visible))
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only include tasks whose title contains this text")
	return cmd
}
