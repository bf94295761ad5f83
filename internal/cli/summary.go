// Package cli renders batch results for the terminal.
package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/at-ishikawa/diarium2journey/internal/batch"
)

// SummaryPrinter writes a human readable report of a run.
type SummaryPrinter struct {
	writer io.Writer
	bold   *color.Color
	green  *color.Color
	yellow *color.Color
	red    *color.Color
}

func NewSummaryPrinter(writer io.Writer) *SummaryPrinter {
	return &SummaryPrinter{
		writer: writer,
		bold:   color.New(color.Bold),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
	}
}

// Print reports every failed folder with its reason, every metadata warning,
// and where the archive was written. tempDirectory is mentioned when it was kept.
func (p *SummaryPrinter) Print(summary *batch.Summary, tempDirectory string) error {
	failed := summary.Failed()
	total := len(summary.Results)

	if _, err := p.bold.Fprintf(p.writer, "Converted %d of %d day-folders\n", total-len(failed), total); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	for _, result := range summary.Results {
		for _, warning := range result.Warnings {
			if _, err := p.yellow.Fprintf(p.writer, "  warning %s: %v\n", result.Folder, warning); err != nil {
				return fmt.Errorf("failed to write warning: %w", err)
			}
		}
	}
	for _, result := range failed {
		if _, err := p.red.Fprintf(p.writer, "  failed  %s: %v\n", result.Folder, result.Err); err != nil {
			return fmt.Errorf("failed to write failure: %w", err)
		}
	}

	if summary.ArchivePath == "" {
		return nil
	}
	if _, err := p.green.Fprintf(p.writer, "Archive with %d files is in %s\n", summary.ArchivedFiles, summary.ArchivePath); err != nil {
		return fmt.Errorf("failed to write archive location: %w", err)
	}
	if tempDirectory != "" {
		if _, err := fmt.Fprintf(p.writer, "Please clear the temporary directory %s yourself.\n", tempDirectory); err != nil {
			return fmt.Errorf("failed to write temp directory: %w", err)
		}
	}
	return nil
}
