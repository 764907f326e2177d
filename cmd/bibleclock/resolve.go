package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/clock"
	"github.com/at-ishikawa/bibleclock/internal/resolver"
)

func newResolveCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "resolve",
		Short: "Show which verses a time or a date resolves to",
	}
	command.AddCommand(
		newResolveClockCommand(),
		newResolveDayCommand(),
	)
	return command
}

func newResolveClockCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "clock <time>",
		Short:   "Resolve a time such as 3:16 or \"2:37 PM\"",
		Args:    cobra.RangeArgs(1, 2),
		Example: "  bibleclock resolve clock 2:37 PM",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := clock.ParseTwelveHour(strings.Join(args, " "), time.Now())
			if err != nil {
				return err
			}
			res, err := loadResolver()
			if err != nil {
				return err
			}

			slot := clock.SlotOf(t)
			printResolution(cmd.OutOrStdout(), res.ResolveClock(slot.Hour, slot.Minute))
			return nil
		},
	}
}

func newResolveDayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "day <yyyy-mm-dd>",
		Short: "Resolve a date to its historical event verses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := clock.ParseDate(args[0], time.Local)
			if err != nil {
				return err
			}
			res, err := loadResolver()
			if err != nil {
				return err
			}

			printDayResolution(cmd.OutOrStdout(), date, res.ResolveDay(date))
			return nil
		},
	}
}

func loadResolver() (*resolver.Resolver, error) {
	cfg, err := loadConfig(nil)
	if err != nil {
		return nil, err
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return newResolver(cfg, store)
}

func printResolution(w io.Writer, res resolver.Resolution) {
	bold := color.New(color.Bold)
	match := "fallback"
	if res.Exact {
		match = "exact"
	}
	bold.Fprintf(w, "%s", res.Slot)
	fmt.Fprintf(w, " (%s, %d steps)\n", match, len(res.Steps))

	fmt.Fprintln(w, "Steps:")
	for _, step := range res.Steps {
		probe := fmt.Sprintf("%d:%d", step.Chapter, step.Verse)
		if step.Kind == resolver.StepBaseCase {
			probe = resolver.BaseCase.String()
		}
		fmt.Fprintf(w, "  %-14s %-8s %d match(es)\n", step.Kind, probe, step.Matches)
	}

	printCandidates(w, res.Candidates)
}

func printDayResolution(w io.Writer, date time.Time, res resolver.DayResolution) {
	color.New(color.Bold).Fprintf(w, "%s", date.Format("Monday, January 2"))
	fmt.Fprintf(w, " (%s)\n", res.Tier)
	fmt.Fprintf(w, "Label: %s\n", res.Label)
	if len(res.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(res.Tags, ", "))
	}
	printCandidates(w, res.Candidates)
}

func printCandidates(w io.Writer, candidates []bible.Reference) {
	fmt.Fprintf(w, "Candidates (%d):\n", len(candidates))
	for _, ref := range candidates {
		fmt.Fprintf(w, "  - %s\n", ref)
	}
}
