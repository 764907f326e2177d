package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/report"
	"github.com/at-ishikawa/bibleclock/internal/resolver"
	"github.com/at-ishikawa/bibleclock/internal/verse"
)

func newCoverageCommand() *cobra.Command {
	var (
		markdownPath string
		templatePath string
		pdf          bool
	)

	command := &cobra.Command{
		Use:   "coverage",
		Short: "Count how many clock slots resolve to an exact verse",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(nil)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}

			index := resolverIndex(cfg, store)
			source := fmt.Sprintf("the %d verses of the loaded KJV dataset", store.Len(verse.KJV))
			if _, ok := index.(*bible.Canon); ok {
				source = fmt.Sprintf("the KJV canon (%d verses)", bible.KJV().TotalVerses())
			}
			coverage := resolver.MeasureCoverage(index)

			res, err := newResolver(cfg, store)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printCoverage(w, source, coverage)
			printDayTableStats(w, res.DayTable().Stats())

			if pdf && markdownPath == "" {
				markdownPath = filepath.Join(cfg.Display.OutputDirectory, "coverage.md")
			}
			if markdownPath == "" {
				return nil
			}

			tmpl, err := report.ParseCoverageTemplate(templatePath)
			if err != nil {
				return fmt.Errorf("report.ParseCoverageTemplate() > %w", err)
			}
			path, err := report.WriteCoverageFile(markdownPath, tmpl, report.CoverageReport{
				GeneratedAt: time.Now(),
				Source:      source,
				Coverage:    coverage,
			})
			if err != nil {
				return fmt.Errorf("report.WriteCoverageFile() > %w", err)
			}
			fmt.Fprintf(w, "Markdown: %s\n", path)

			if pdf {
				pdfPath, err := report.ConvertMarkdownToPDF(path)
				if err != nil {
					return fmt.Errorf("report.ConvertMarkdownToPDF() > %w", err)
				}
				fmt.Fprintf(w, "PDF: %s\n", pdfPath)
			}
			return nil
		},
	}
	command.Flags().StringVar(&markdownPath, "markdown", "", "Write a markdown report to this .md path")
	command.Flags().StringVar(&templatePath, "template", "", "Template for the markdown report")
	command.Flags().BoolVar(&pdf, "pdf", false, "Also convert the markdown report to PDF")

	return command
}

func printCoverage(w io.Writer, source string, c resolver.Coverage) {
	fmt.Fprintf(w, "Coverage against %s\n", source)
	color.New(color.FgGreen).Fprintf(w, "  exact:    %d/%d (%.1f%%)\n", c.Exact, c.Total, c.ExactPercent())
	color.New(color.FgGreen).Fprintf(w, "  combined: %d/%d (%.1f%%)\n", c.Combined(), c.Total, c.CombinedPercent())
	if len(c.Uncovered) == 0 {
		return
	}
	color.New(color.FgYellow).Fprintf(w, "  uncovered: %d slot(s)\n", len(c.Uncovered))
	for _, slot := range c.Uncovered {
		fmt.Fprintf(w, "    - %s\n", slot)
	}
}

func printDayTableStats(w io.Writer, stats resolver.DayTableStats) {
	fmt.Fprintf(w, "Day table: %d dated entries (%.1f%% of days), %d months, %d seasons\n",
		stats.Dates, stats.DatePercent, stats.Months, stats.Seasons)
}
