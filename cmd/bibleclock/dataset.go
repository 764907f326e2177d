package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/verse"
)

func newDatasetCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "dataset",
		Short: "Manage the verse datasets",
	}
	command.AddCommand(newDatasetInstallCommand())
	return command
}

func newDatasetInstallCommand() *cobra.Command {
	var output string
	command := &cobra.Command{
		Use:   "install <file>",
		Short: "Convert a KJV dataset (JSON or OSIS, optionally xz) into the file loaded when data.kjv_path is empty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				path, err := verse.InstallPath()
				if err != nil {
					return err
				}
				output = path
			}

			store := verse.NewStore()
			report, err := store.LoadFile(args[0], verse.KJV)
			if err != nil {
				return fmt.Errorf("store.LoadFile() > %w", err)
			}
			if report.Loaded == 0 {
				return fmt.Errorf("no verses loaded from %s", args[0])
			}
			if err := store.WriteFile(output, verse.KJV); err != nil {
				return fmt.Errorf("store.WriteFile() > %w", err)
			}

			w := cmd.OutOrStdout()
			canon := bible.KJV()
			fmt.Fprintf(w, "installed %d verses to %s\n", report.Loaded, output)
			if len(report.Skipped) > 0 {
				fmt.Fprintf(w, "skipped %d unparsable entries\n", len(report.Skipped))
			}
			if count, missing := verse.Missing(store, canon, maxListed); count > 0 {
				fmt.Fprintf(w, "%d of %d canonical verses are missing, e.g. %s\n",
					count, canon.TotalVerses(), joinReferences(missing))
			}
			return nil
		},
	}
	command.Flags().StringVarP(&output, "output", "o", "", "Destination file (default $HOME/.config/bibleclock/kjv.json.xz)")
	return command
}
