package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/diarium2journey/internal/batch"
	"github.com/at-ishikawa/diarium2journey/internal/bootstrap"
	"github.com/at-ishikawa/diarium2journey/internal/cli"
	"github.com/at-ishikawa/diarium2journey/internal/config"
	"github.com/at-ishikawa/diarium2journey/internal/diarium"
	"github.com/at-ishikawa/diarium2journey/internal/journey"
)

func newConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [key=value...]",
		Short: "Convert a Diarium HTML export into a Journey archive",
		Long: `Convert a Diarium export (one folder per day holding an HTML document and media files)
into Journey entries and package them into a zip archive.

Parameters may also be given as key=value pairs:
  language|lang|lng, inDir|in, outDir|out, tempDir|tmpDir|temp|tmp, enableDebugging`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), args)
			if err != nil {
				return err
			}
			labels, err := loadLabels(cfg)
			if err != nil {
				return err
			}
			return runConvert(cmd.Context(), cmd.OutOrStdout(), afero.NewOsFs(), cfg, labels)
		},
	}

	cmd.Flags().String("lang", "", "Language of the export (eng, ger, ...)")
	cmd.Flags().String("in", "", "Directory holding one folder per day")
	cmd.Flags().String("out", "", "Directory the archive is written to")
	cmd.Flags().String("tmp", "", "Working directory for entries and media (default <out>/tmp)")
	cmd.Flags().Int("workers", 0, "Number of day-folders converted concurrently")
	return cmd
}

func runConvert(ctx context.Context, out io.Writer, fsys afero.Fs, cfg *config.Config, labels diarium.Labels) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_, _ = fmt.Fprintf(out, "Reading export from %s\nWriting to %s\nUsing temporary dir %s\nUsing language %s\n",
		cfg.Directories.Input, cfg.Directories.Output, cfg.Directories.Temp, cfg.Language)

	sink := journey.NewDirectorySink(fsys, cfg.Directories.Temp, cfg.Export.CopyAttempts)
	driver := batch.NewDriver(fsys, diarium.NewConverter(labels), sink, batch.Options{
		InputDirectory:     cfg.Directories.Input,
		DocumentExtension:  cfg.Export.DocumentExtension,
		DateLayout:         cfg.Export.DateLayout,
		Workers:            cfg.Export.Workers,
		WorkDirectory:      cfg.Directories.Temp,
		ArchivePath:        cfg.ArchivePath(),
		CleanWorkDirectory: cfg.Export.CleanTemp,
		SkipDirectories:    []string{cfg.Directories.Output, cfg.Directories.Temp},
	}, slog.Default())

	app := bootstrap.New()
	archivePath := cfg.ArchivePath()
	if _, err := fsys.Stat(archivePath); errors.Is(err, os.ErrNotExist) {
		app.OnFailure(func(ctx context.Context) error {
			if err := fsys.Remove(archivePath); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove incomplete archive %s: %w", archivePath, err)
			}
			return nil
		})
	}

	var summary *batch.Summary
	err := app.Run(ctx, func(ctx context.Context) error {
		var err error
		summary, err = driver.Export(ctx)
		return err
	})

	if summary != nil {
		tempDirectory := cfg.Directories.Temp
		if cfg.Export.CleanTemp {
			tempDirectory = ""
		}
		if printErr := cli.NewSummaryPrinter(out).Print(summary, tempDirectory); printErr != nil {
			return errors.Join(err, printErr)
		}
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if failed := len(summary.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d day-folders could not be converted", failed, len(summary.Results))
	}
	return nil
}
