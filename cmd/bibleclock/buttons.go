package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/bibleclock/internal/clock"
	"github.com/at-ishikawa/bibleclock/internal/selector"
)

func newButtonsCommand() *cobra.Command {
	var at string

	command := &cobra.Command{
		Use:   "buttons [1|2]...",
		Short: "Simulate button presses: 1 cycles the mode, 2 toggles the version",
		Long: "Simulate button presses without a display. Each press prints the new state\n" +
			"and the verse that would be shown. Without arguments, presses 1 1 2 2.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"1", "1", "2", "2"}
			}
			for _, arg := range args {
				if arg != "1" && arg != "2" {
					return fmt.Errorf("unknown button %q, expected 1 or 2", arg)
				}
			}

			cfg, err := loadConfig(nil)
			if err != nil {
				return err
			}
			now := time.Now().In(cfg.Clock.Location())
			if at != "" {
				if now, err = clock.ParseTwelveHour(at, now); err != nil {
					return err
				}
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			res, err := newResolver(cfg, store)
			if err != nil {
				return err
			}
			sel := newSelector(cfg, res, store)

			w := cmd.OutOrStdout()
			mode, version := sel.State()
			fmt.Fprintf(w, "start: %s, %s\n", mode.DisplayName(), version.DisplayName())
			for _, button := range args {
				switch button {
				case "1":
					before := sel.Mode()
					after := sel.CycleMode()
					fmt.Fprintf(w, "button 1: mode %s -> %s\n", before, after)
				case "2":
					before := sel.Version()
					after := sel.ToggleVersion()
					fmt.Fprintf(w, "button 2: version %s -> %s\n", before, after)
				}
				payload, err := sel.Tick(now)
				if err != nil {
					fmt.Fprintf(w, "  %s: %s\n", selector.PlaceholderText, err)
					continue
				}
				fmt.Fprintf(w, "  %s (%s)\n", payload.Label, payload.DisplayTime())
			}
			return nil
		},
	}
	command.Flags().StringVar(&at, "time", "", `Time to resolve after each press, e.g. "3:16 PM"`)

	return command
}
