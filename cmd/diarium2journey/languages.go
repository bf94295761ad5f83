package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/diarium2journey/internal/diarium"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages whose metadata labels are known",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(nil, nil)
			if err != nil {
				return err
			}
			localization, err := diarium.LoadLocalization(cfg.LocalizationFile)
			if err != nil {
				return fmt.Errorf("diarium.LoadLocalization() > %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "CODE\tLOCATION\tTAGS\tPEOPLE")
			for _, code := range localization.Codes() {
				labels := localization[code]
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", code, labels.Location, labels.Tags, labels.People)
			}
			_ = w.Flush()

			return nil
		},
	}
}
