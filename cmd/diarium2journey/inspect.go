package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/diarium2journey/internal/diarium"
	"github.com/at-ishikawa/diarium2journey/internal/journey"
)

// inspectOutput is what inspect prints for one document.
type inspectOutput struct {
	Entry    journey.Entry `json:"entry"`
	Warnings []string      `json:"warnings"`
}

func newInspectCommand() *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the entry extracted from a single Diarium HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), nil)
			if err != nil {
				return err
			}
			labels, err := loadLabels(cfg)
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("os.Open() > %w", err)
			}
			defer func() {
				_ = file.Close()
			}()

			return runInspect(cmd.OutOrStdout(), file, diarium.NewConverter(labels), day, cfg.Export.DateLayout)
		},
	}

	cmd.Flags().String("lang", "", "Language of the document (eng, ger, ...)")
	cmd.Flags().StringVar(&day, "day", "", "Day-folder name; when set, the id and dates are filled in too")
	return cmd
}

func runInspect(out io.Writer, document io.Reader, converter *diarium.Converter, day string, dateLayout string) error {
	extraction, err := converter.Extract(document)
	if err != nil {
		return fmt.Errorf("converter.Extract() > %w", err)
	}

	output := inspectOutput{
		Entry:    extraction.Entry,
		Warnings: make([]string, 0, len(extraction.Warnings)),
	}
	if day != "" {
		parsed, err := diarium.ParseDay(day, dateLayout)
		if err != nil {
			return err
		}
		output.Entry = diarium.Assemble(parsed, extraction, nil)
	}
	for _, warning := range extraction.Warnings {
		output.Warnings = append(output.Warnings, warning.Error())
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("json.Encoder.Encode() > %w", err)
	}
	return nil
}
