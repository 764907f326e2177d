package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/bibleclock/internal/server"
)

func newCtlCommand() *cobra.Command {
	var (
		host    string
		baseURL string
	)

	command := &cobra.Command{
		Use:   "ctl",
		Short: "Control a running clock through its control service",
	}
	command.PersistentFlags().StringVar(&host, "host", "localhost", "Host of the running clock")
	command.PersistentFlags().StringVar(&baseURL, "url", "", "Base URL of the control service, overrides --host and server.port")

	newClient := func() (*server.ControlClient, error) {
		if baseURL != "" {
			return server.NewControlClient(http.DefaultClient, baseURL), nil
		}
		cfg, err := loadConfig(nil)
		if err != nil {
			return nil, err
		}
		return server.NewDefaultControlClient(host, cfg.Server.Port), nil
	}

	event := func(use, short string, args cobra.PositionalArgs, call func(ctx context.Context, c *server.ControlClient, args []string) (string, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := newClient()
				if err != nil {
					return err
				}
				eventID, err := call(cmd.Context(), client, args)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "queued event %s\n", eventID)
				return nil
			},
		}
	}

	command.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show the current mode, version and verse",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := newClient()
				if err != nil {
					return err
				}
				status, err := client.Status(cmd.Context())
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), status)
				return nil
			},
		},
		&cobra.Command{
			Use:   "preview <output.png>",
			Short: "Save the image currently on the display",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := newClient()
				if err != nil {
					return err
				}
				preview, err := client.Preview(cmd.Context(), true)
				if err != nil {
					return err
				}
				if err := os.WriteFile(args[0], preview.PNG, 0644); err != nil {
					return fmt.Errorf("os.WriteFile(%s) > %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s to %s\n", preview.Path, args[0])
				return nil
			},
		},
		event("cycle", "Switch to the next mode, like button 1", cobra.NoArgs,
			func(ctx context.Context, c *server.ControlClient, _ []string) (string, error) {
				return c.CycleMode(ctx)
			}),
		event("toggle", "Toggle the version, like button 2", cobra.NoArgs,
			func(ctx context.Context, c *server.ControlClient, _ []string) (string, error) {
				return c.ToggleVersion(ctx)
			}),
		event("mode <clock|day>", "Set the mode", cobra.ExactArgs(1),
			func(ctx context.Context, c *server.ControlClient, args []string) (string, error) {
				return c.SetMode(ctx, args[0])
			}),
		event("version <kjv_only|kjv_amplified>", "Set the version", cobra.ExactArgs(1),
			func(ctx context.Context, c *server.ControlClient, args []string) (string, error) {
				return c.SetVersion(ctx, args[0])
			}),
		event("refresh", "Recompute the verse now", cobra.NoArgs,
			func(ctx context.Context, c *server.ControlClient, _ []string) (string, error) {
				return c.Refresh(ctx)
			}),
	)
	return command
}

func printStatus(w io.Writer, s *server.GetStatusResponse) {
	bold := color.New(color.Bold)
	fmt.Fprintf(w, "Mode: %s  Version: %s\n", s.Mode, s.Version)
	switch {
	case s.Placeholder:
		color.New(color.FgRed).Fprintf(w, "Showing a placeholder: %s\n", s.LastError)
	case s.Label != "":
		bold.Fprintf(w, "%s", s.Label)
		fmt.Fprintf(w, "  %s\n%s\n", s.DisplayTime, s.Text)
	default:
		fmt.Fprintln(w, "Nothing displayed yet")
	}
	fmt.Fprintf(w, "Ticks: %d  Renders: %d  Render errors: %d  Events: %d\n", s.Ticks, s.Renders, s.RenderErrors, s.Events)
	if !s.StartedAt.IsZero() {
		fmt.Fprintf(w, "Started: %s\n", s.StartedAt.Local().Format("2006-01-02 15:04:05"))
	}
}
