package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/config"
	"github.com/at-ishikawa/bibleclock/internal/resolver"
	"github.com/at-ishikawa/bibleclock/internal/verse"
)

const maxListed = 10

type validationResult struct {
	Errors   []string
	Warnings []string
}

func (r *validationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and the verse datasets against the canon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(nil)
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

			result := validate(cfg, store, res.DayTable())
			displayValidationResults(cmd.OutOrStdout(), result)
			if result.HasErrors() {
				return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
			}
			return nil
		},
	}
}

func validate(cfg *config.Config, store *verse.Store, days *resolver.DayTable) *validationResult {
	result := &validationResult{
		Warnings: append([]string(nil), cfg.Warnings...),
	}
	canon := bible.KJV()

	if store.Len(verse.KJV) == 0 {
		result.Errors = append(result.Errors, "the KJV dataset has no verses")
	}
	if count, missing := verse.Missing(store, canon, maxListed); count > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d of %d canonical verses are missing from the KJV dataset, e.g. %s",
				count, canon.TotalVerses(), joinReferences(missing)))
	}

	for _, book := range canon.Books() {
		if _, ok := bible.Summary(book); !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("no overview for %s", book))
		}
	}

	var missingDays []bible.Reference
	for _, ref := range days.References() {
		if _, ok := store.Lookup(ref, verse.KJV); !ok {
			missingDays = append(missingDays, ref)
		}
	}
	if len(missingDays) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d day table reference(s) have no KJV text: %s", len(missingDays), joinReferences(missingDays)))
	}

	if res := resolver.MeasureCoverage(resolverIndex(cfg, store)); res.Exact == 0 {
		result.Warnings = append(result.Warnings, "no clock slot resolves to an exact verse")
	}
	return result
}

func joinReferences(refs []bible.Reference) string {
	s := ""
	for i, ref := range refs {
		if i == maxListed {
			return s + fmt.Sprintf(" and %d more", len(refs)-maxListed)
		}
		if i > 0 {
			s += ", "
		}
		s += ref.String()
	}
	return s
}

func displayValidationResults(w io.Writer, result *validationResult) {
	fmt.Fprintln(w, "\n=== Validation Results ===")

	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "✗ Errors (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
		fmt.Fprintln(w)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "⚠ Warnings (%d):\n", len(result.Warnings))
		for _, warn := range result.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "=== Summary ===")
	if !result.HasErrors() && len(result.Warnings) == 0 {
		fmt.Fprintln(w, "✓ All validations passed!")
		return
	}
	if result.HasErrors() {
		fmt.Fprintf(w, "✗ Total errors: %d\n", len(result.Errors))
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "⚠ Total warnings: %d\n", len(result.Warnings))
	}
}
