// Package report writes the dial coverage report as markdown and PDF.
package report

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/bibleclock/internal/resolver"
)

//go:embed templates/coverage.md.go.tmpl
var fallbackCoverageTemplate string

const coverageTemplateName = "coverage.md.go.tmpl"

type CoverageReport struct {
	Title       string
	GeneratedAt time.Time
	// Source names the index the dial was resolved against.
	Source   string
	Coverage resolver.Coverage
}

// ParseCoverageTemplate reads a template from templatePath, falling back to
// the embedded one when the path is empty or does not parse.
func ParseCoverageTemplate(templatePath string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a coverage template, using the embedded one",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(coverageTemplateName).Parse(fallbackCoverageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

func WriteCoverage(w io.Writer, tmpl *template.Template, report CoverageReport) error {
	if report.Title == "" {
		report.Title = "Clock coverage"
	}
	if err := tmpl.Execute(w, report); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// WriteCoverageFile writes the markdown report to path, creating its
// directory, and returns the path written.
func WriteCoverageFile(path string, tmpl *template.Template, report CoverageReport) (string, error) {
	if !strings.HasSuffix(path, ".md") {
		return "", fmt.Errorf("output file must have .md extension: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := WriteCoverage(f, tmpl, report); err != nil {
		return "", err
	}
	return path, nil
}

// ConvertMarkdownToPDF writes a PDF next to the markdown file and returns
// its absolute path.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
