package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/bibleapi"
	"github.com/at-ishikawa/bibleclock/internal/verse"
)

func newLookupCommand() *cobra.Command {
	var amplified bool

	command := &cobra.Command{
		Use:     "lookup <reference>",
		Short:   "Print the text of a verse, a passage or a book overview",
		Args:    cobra.MinimumNArgs(1),
		Example: "  bibleclock lookup John 3:16\n  bibleclock lookup \"Book of John Overview\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := bible.ParseReference(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("bible.ParseReference() > %w", err)
			}
			cfg, err := loadConfig(nil)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if ref.IsSummary() {
				text, ok := bible.Summary(ref.Book)
				if !ok {
					return fmt.Errorf("no overview for %s", ref.Book)
				}
				printText(w, ref, "Overview", text)
				return nil
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			text, ok := store.Lookup(ref, verse.KJV)
			if !ok {
				if !cfg.API.Enabled {
					return &verse.NotFoundError{Reference: ref, Translation: verse.KJV}
				}
				client := bibleapi.NewClient(cfg.API)
				defer func() {
					_ = client.Close()
				}()
				v, err := client.Lookup(cmd.Context(), ref)
				if err != nil {
					return errors.Join(&verse.NotFoundError{Reference: ref, Translation: verse.KJV}, err)
				}
				text = v.Text
			}
			printText(w, ref, verse.KJV.DisplayName(), verse.Clean(text))

			if amplified {
				alt, ok := store.Lookup(ref, verse.Amplified)
				if !ok {
					color.New(color.FgYellow).Fprintf(w, "⚠ no %s text for %s\n", verse.Amplified.DisplayName(), ref)
					return nil
				}
				printText(w, ref, verse.Amplified.DisplayName(), verse.Clean(alt))
			}
			return nil
		},
	}
	command.Flags().BoolVar(&amplified, "amplified", false, "Also print the Amplified text")

	return command
}

func printText(w io.Writer, ref bible.Reference, source, text string) {
	color.New(color.Bold).Fprintf(w, "%s", ref)
	fmt.Fprintf(w, " (%s)\n%s\n", source, text)
}
