package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/bibleclock/internal/bibleapi"
	"github.com/at-ishikawa/bibleclock/internal/bootstrap"
	"github.com/at-ishikawa/bibleclock/internal/clock"
	"github.com/at-ishikawa/bibleclock/internal/config"
	"github.com/at-ishikawa/bibleclock/internal/display"
	"github.com/at-ishikawa/bibleclock/internal/render"
	"github.com/at-ishikawa/bibleclock/internal/scheduler"
	"github.com/at-ishikawa/bibleclock/internal/selector"
	"github.com/at-ishikawa/bibleclock/internal/server"
	"github.com/at-ishikawa/bibleclock/internal/state"
	"github.com/at-ishikawa/bibleclock/internal/verse"
)

type runOptions struct {
	once     bool
	time     string
	date     string
	mode     modeFlag
	version  versionFlag
	simulate bool
}

func newRunCommand() *cobra.Command {
	var opts runOptions

	command := &cobra.Command{
		Use:   "run",
		Short: "Run the clock, rendering a new screen whenever the verse changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClock(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	command.Flags().BoolVar(&opts.once, "once", false, "Render one screen and exit")
	command.Flags().StringVar(&opts.time, "time", "", `Use a fixed time such as "2:37 PM"`)
	command.Flags().StringVar(&opts.date, "date", "", "Use a fixed date such as 2025-12-25")
	command.Flags().Var(&opts.mode, "mode", "Start in this mode: clock or day")
	command.Flags().Var(&opts.version, "version", "Start with this version: kjv_only or kjv_amplified")
	command.Flags().BoolVar(&opts.simulate, "simulate", false, "Advance the clock one minute per interval")

	return command
}

func (opts runOptions) overrides() map[string]any {
	overrides := map[string]any{}
	if opts.mode != "" {
		overrides["clock.mode"] = string(opts.mode)
	}
	if opts.version != "" {
		overrides["clock.version"] = string(opts.version)
	}
	return overrides
}

// clockSource builds the time source from the flags. A fixed time or date
// freezes the clock unless simulate is set, in which case it is the start.
func (opts runOptions) clockSource(cfg config.ClockConfig, now time.Time) (clock.Source, error) {
	loc := cfg.Location()
	start := now.In(loc)

	if opts.date != "" {
		day, err := clock.ParseDate(opts.date, loc)
		if err != nil {
			return nil, fmt.Errorf("clock.ParseDate() > %w", err)
		}
		start = time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, loc)
	}
	if opts.time != "" {
		t, err := clock.ParseTwelveHour(opts.time, start)
		if err != nil {
			return nil, fmt.Errorf("clock.ParseTwelveHour() > %w", err)
		}
		start = t
	}

	switch {
	case opts.simulate:
		return clock.NewSimulated(start, cfg.Interval, time.Minute), nil
	case opts.date != "" || opts.time != "":
		return clock.Fixed{T: start}, nil
	default:
		return clock.System{Location: loc}, nil
	}
}

func runClock(ctx context.Context, stdout io.Writer, opts runOptions) error {
	cfg, err := loadConfig(opts.overrides())
	if err != nil {
		return err
	}
	for _, warning := range cfg.Warnings {
		color.New(color.FgYellow).Fprintf(stdout, "⚠ %s\n", warning)
	}

	source, err := opts.clockSource(cfg.Clock, time.Now())
	if err != nil {
		return err
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

	renderer, err := render.New(render.Options{
		Width:       cfg.Display.Width,
		Height:      cfg.Display.Height,
		MaxFontSize: cfg.Display.FontSize,
		MinFontSize: cfg.Display.MinFontSize,
	})
	if err != nil {
		return fmt.Errorf("render.New() > %w", err)
	}
	disp, err := display.NewPNGDisplay(cfg.Display.OutputDirectory, cfg.Display.Keep)
	if err != nil {
		return fmt.Errorf("display.NewPNGDisplay() > %w", err)
	}

	app := bootstrap.New(bootstrap.WithLogger(slog.Default()))
	app.AddShutdownHook("display", func(context.Context) error {
		return disp.Close()
	})

	schedulerOpts := []scheduler.Option{
		scheduler.WithInterval(cfg.Clock.Interval),
		scheduler.WithLogger(slog.Default()),
	}

	if cfg.State.Persist {
		repo, db, err := openRepository(ctx, cfg)
		if err != nil {
			return err
		}
		app.AddShutdownHook("state", func(context.Context) error {
			return db.Close()
		})
		if err := restoreModes(ctx, repo, sel, opts); err != nil {
			slog.Warn("failed to restore modes", "error", err)
		}
		schedulerOpts = append(schedulerOpts, scheduler.WithRecorder(repo, cfg.State.HistoryLimit))
	}

	// sched is assigned below; the backfiller only notifies after Run starts.
	var sched *scheduler.Scheduler
	var backfiller *bibleapi.Backfiller
	if cfg.API.Enabled {
		client := bibleapi.NewClient(cfg.API)
		app.AddShutdownHook("bibleapi", func(context.Context) error {
			return client.Close()
		})
		backfiller = bibleapi.NewBackfiller(client, store, func() {
			if err := sched.Submit(scheduler.NewEvent(scheduler.EventRefresh, "backfill")); err != nil {
				slog.Warn("failed to request a refresh", "error", err)
			}
		}, slog.Default())
		schedulerOpts = append(schedulerOpts, scheduler.WithBackfiller(backfiller))
	}

	sched = scheduler.New(sel, renderer, disp, source, schedulerOpts...)

	if opts.once {
		payload, err := sched.RunOnce(ctx)
		printPayload(stdout, payload)
		if path, ok := disp.Latest(); ok {
			fmt.Fprintf(stdout, "Saved %s\n", path)
		}
		if err != nil {
			return fmt.Errorf("scheduler.RunOnce() > %w", err)
		}
		return app.Run(ctx, func(context.Context) error { return nil })
	}

	var srv *http.Server
	if cfg.Server.Enabled {
		srv = server.NewHTTPServer(cfg.Server, server.NewControlHandler(sched, disp))
		app.AddShutdownHook("server", srv.Shutdown)
	}

	return app.Run(ctx, func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return sched.Run(ctx)
		})
		if backfiller != nil {
			g.Go(func() error {
				return backfiller.Run(ctx)
			})
		}
		if srv != nil {
			g.Go(func() error {
				slog.Info("starting control server", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("srv.ListenAndServe() > %w", err)
				}
				return nil
			})
		}
		return g.Wait()
	})
}

type modesLoader interface {
	LoadModes(ctx context.Context) (state.Modes, bool, error)
}

// restoreModes applies the persisted modes unless a flag chose them.
func restoreModes(ctx context.Context, repo modesLoader, sel *selector.Selector, opts runOptions) error {
	modes, found, err := repo.LoadModes(ctx)
	if err != nil {
		return fmt.Errorf("LoadModes() > %w", err)
	}
	if !found {
		return nil
	}
	if opts.mode == "" {
		if mode, err := selector.ParseMode(modes.Mode); err == nil {
			sel.SetMode(mode)
		}
	}
	if opts.version == "" {
		if version, err := selector.ParseVersion(modes.Version); err == nil {
			sel.SetVersion(version)
		}
	}
	mode, version := sel.State()
	slog.Info("restored modes", "mode", mode, "version", version)
	return nil
}

func printPayload(w io.Writer, p selector.Payload) {
	bold := color.New(color.Bold)
	if p.Placeholder {
		color.New(color.FgRed).Fprintf(w, "%s: %s\n", selector.PlaceholderText, p.Error)
		return
	}
	bold.Fprintf(w, "%s", p.Label)
	fmt.Fprintf(w, "  [%s, %s, %s]\n", p.DisplayTime(), p.Mode.DisplayName(), p.Version.DisplayName())
	if p.Description != "" {
		fmt.Fprintf(w, "%s\n", p.Description)
	}
	fmt.Fprintf(w, "%s\n", p.Text)
	if p.HasAltText() {
		fmt.Fprintf(w, "\n%s: %s\n", verse.Amplified.DisplayName(), p.AltText)
	}
}
