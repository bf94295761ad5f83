// Package batch converts a whole Diarium export, one day-folder at a time.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/diarium2journey/internal/diarium"
	"github.com/at-ishikawa/diarium2journey/internal/journey"
)

// ErrUnsafeCleanup is returned by Export when removing the work directory
// would also remove the archive or the export being converted.
var ErrUnsafeCleanup = errors.New("work directory cannot be removed")

// Options controls where the driver reads from and writes to.
type Options struct {
	InputDirectory    string
	DocumentExtension string
	DateLayout        string
	Workers           int

	// WorkDirectory is where the sink writes; it is archived by Export.
	WorkDirectory      string
	ArchivePath        string
	CleanWorkDirectory bool

	// SkipDirectories are directories that may live inside the input
	// directory but are not day-folders, such as the output directory.
	SkipDirectories []string
}

// Driver converts every day-folder of an export. Folders are processed
// concurrently and independently; one failing folder never stops the others.
type Driver struct {
	fs        afero.Fs
	converter *diarium.Converter
	sink      journey.Sink
	options   Options
	logger    *slog.Logger
}

func NewDriver(fsys afero.Fs, converter *diarium.Converter, sink journey.Sink, options Options, logger *slog.Logger) *Driver {
	if options.Workers < 1 {
		options.Workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		fs:        fsys,
		converter: converter,
		sink:      sink,
		options:   options,
		logger:    logger,
	}
}

// Export creates the working directories, converts every day-folder and
// packages the work directory into the archive. Folder failures are reported
// in the summary; only failures that affect the whole run are returned as errors.
func (d *Driver) Export(ctx context.Context) (*Summary, error) {
	if d.options.CleanWorkDirectory {
		if err := d.checkCleanable(); err != nil {
			return nil, err
		}
	}
	if err := d.prepareDirectories(); err != nil {
		return nil, err
	}

	summary, err := d.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	count, err := journey.Archive(ctx, d.fs, d.options.WorkDirectory, d.options.ArchivePath)
	if err != nil {
		return summary, fmt.Errorf("journey.Archive() > %w", err)
	}
	summary.ArchivePath = d.options.ArchivePath
	summary.ArchivedFiles = count

	if d.options.CleanWorkDirectory {
		if err := d.fs.RemoveAll(d.options.WorkDirectory); err != nil {
			return summary, fmt.Errorf("remove work directory %s: %w", d.options.WorkDirectory, err)
		}
	}
	return summary, nil
}

// Run converts every day-folder of the input directory into the sink.
func (d *Driver) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	logger := d.logger.With("run_id", runID)

	folders, err := d.listFolders(logger)
	if err != nil {
		return nil, err
	}
	logger.Info("converting day-folders", "input", d.options.InputDirectory, "folders", len(folders), "workers", d.options.Workers)

	summary := &Summary{
		RunID:   runID,
		Results: make([]Result, len(folders)),
	}
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(d.options.Workers)
	for i, folder := range folders {
		g.Go(func() error {
			summary.Results[i] = d.processFolder(ctx, logger.With("folder", folder), folder)
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("converted day-folders",
		"succeeded", len(summary.Succeeded()),
		"failed", len(summary.Failed()),
		"elapsed", time.Since(start))
	return summary, nil
}

func (d *Driver) prepareDirectories() error {
	for _, dir := range []string{filepath.Dir(d.options.ArchivePath), d.options.WorkDirectory} {
		if err := d.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// checkCleanable refuses to remove a work directory holding the archive or the export.
func (d *Driver) checkCleanable() error {
	for _, path := range []string{d.options.ArchivePath, d.options.InputDirectory} {
		if isWithin(d.options.WorkDirectory, path) {
			return fmt.Errorf("%w: %s contains %s", ErrUnsafeCleanup, d.options.WorkDirectory, path)
		}
	}
	return nil
}

func (d *Driver) listFolders(logger *slog.Logger) ([]string, error) {
	infos, err := afero.ReadDir(d.fs, d.options.InputDirectory)
	if err != nil {
		return nil, fmt.Errorf("afero.ReadDir(%s) > %w", d.options.InputDirectory, err)
	}

	skipped := make(map[string]bool, len(d.options.SkipDirectories))
	for _, dir := range d.options.SkipDirectories {
		skipped[normalizePath(dir)] = true
	}

	folders := make([]string, 0, len(infos))
	for _, info := range infos {
		if !info.IsDir() {
			logger.Debug("skipping file in input directory", "name", info.Name())
			continue
		}
		if skipped[normalizePath(filepath.Join(d.options.InputDirectory, info.Name()))] {
			logger.Debug("skipping working directory", "name", info.Name())
			continue
		}
		folders = append(folders, info.Name())
	}
	return folders, nil
}

func (d *Driver) processFolder(ctx context.Context, logger *slog.Logger, folder string) Result {
	result := Result{Folder: folder}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	entry, media, warnings, err := d.convertFolder(folder)
	result.Warnings = warnings
	if err != nil {
		logger.Error("failed to convert folder", "error", err)
		result.Err = err
		return result
	}
	for _, warning := range warnings {
		logger.Warn("malformed metadata", "kind", warning.Kind.String(), "payload", warning.Payload, "reason", warning.Reason)
	}

	if err := d.sink.WriteEntry(ctx, entry); err != nil {
		logger.Error("failed to write entry", "entry_id", entry.ID, "error", err)
		result.Err = fmt.Errorf("write entry %s: %w", entry.ID, err)
		return result
	}
	result.EntryID = entry.ID

	if err := d.copyMedia(ctx, folder, media, entry.Photos); err != nil {
		logger.Error("failed to copy media", "entry_id", entry.ID, "error", err)
		result.Err = err
		return result
	}
	result.Photos = len(entry.Photos)

	logger.Debug("converted folder", "entry_id", entry.ID, "photos", len(entry.Photos), "tags", len(entry.Tags))
	return result
}

func (d *Driver) convertFolder(folder string) (journey.Entry, []string, []*diarium.MalformedMetadataError, error) {
	dir := filepath.Join(d.options.InputDirectory, folder)
	infos, err := afero.ReadDir(d.fs, dir)
	if err != nil {
		return journey.Entry{}, nil, nil, fmt.Errorf("afero.ReadDir(%s) > %w", dir, err)
	}

	var document string
	media := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(info.Name()), d.options.DocumentExtension) {
			document = info.Name()
			continue
		}
		media = append(media, info.Name())
	}
	if document == "" {
		return journey.Entry{}, nil, nil, fmt.Errorf("%w in folder %s. Did you export as html?", diarium.ErrMissingDocument, folder)
	}

	day, err := diarium.ParseDay(folder, d.options.DateLayout)
	if err != nil {
		return journey.Entry{}, nil, nil, err
	}

	path := filepath.Join(dir, document)
	file, err := d.fs.Open(path)
	if err != nil {
		return journey.Entry{}, nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	entry, warnings, err := d.converter.Convert(file, day, media)
	if err != nil {
		return journey.Entry{}, nil, nil, fmt.Errorf("convert %s: %w", path, err)
	}
	return entry, media, warnings, nil
}

// copyMedia copies media[i] to photos[i]. Copies of one folder run
// concurrently and the first failure cancels the rest of that folder.
func (d *Driver) copyMedia(ctx context.Context, folder string, media []string, photos []string) error {
	dir := filepath.Join(d.options.InputDirectory, folder)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.options.Workers)
	for i, name := range media {
		g.Go(func() error {
			return d.sink.CopyMedia(ctx, filepath.Join(dir, name), photos[i])
		})
	}
	return g.Wait()
}

// isWithin reports whether path is dir or lies below it.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(normalizePath(dir), normalizePath(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func normalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
