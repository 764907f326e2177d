package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	var limit int

	command := &cobra.Command{
		Use:   "history",
		Short: "List the most recently displayed verses from the state database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			cfg, err := loadConfig(nil)
			if err != nil {
				return err
			}
			repo, db, err := openRepository(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			entries, err := repo.RecentDisplays(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("repo.RecentDisplays() > %w", err)
			}

			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(w, "Nothing has been displayed yet.")
				return nil
			}
			red := color.New(color.FgRed)
			for _, e := range entries {
				fmt.Fprintf(w, "%s  %-5s %-13s ", e.DisplayedAt.Local().Format("2006-01-02 15:04"), e.Mode, e.Version)
				if e.Placeholder {
					red.Fprintf(w, "placeholder %s\n", e.Label)
					continue
				}
				fmt.Fprintf(w, "%s\n", e.Label)
			}
			return nil
		},
	}
	command.Flags().IntVar(&limit, "limit", 20, "Number of entries to show")

	return command
}
