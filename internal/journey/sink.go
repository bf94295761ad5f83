package journey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go"
	"github.com/spf13/afero"
)

//go:generate mockgen -source=sink.go -destination=../mocks/journey/mock_sink.go -package=mock_journey Sink

// Sink receives the entries and media files of converted day-folders.
// Implementations must accept concurrent calls with distinct names.
type Sink interface {
	WriteEntry(ctx context.Context, entry Entry) error
	CopyMedia(ctx context.Context, sourcePath string, name string) error
}

// DirectorySink writes "<id>.json" files and media copies into a single directory.
type DirectorySink struct {
	fs       afero.Fs
	dir      string
	attempts uint
	delay    time.Duration
}

// NewDirectorySink returns a sink writing into dir. Media copies are tried up
// to attempts times.
func NewDirectorySink(fsys afero.Fs, dir string, attempts uint) *DirectorySink {
	if attempts == 0 {
		attempts = 1
	}
	return &DirectorySink{
		fs:       fsys,
		dir:      dir,
		attempts: attempts,
		delay:    100 * time.Millisecond,
	}
}

// Dir returns the directory the sink writes into.
func (s *DirectorySink) Dir() string {
	return s.dir
}

func (s *DirectorySink) WriteEntry(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("json.Marshal(%s) > %w", entry.ID, err)
	}

	path := filepath.Join(s.dir, entry.ID+".json")
	if err := afero.WriteFile(s.fs, path, data, 0644); err != nil {
		return fmt.Errorf("afero.WriteFile(%s) > %w", path, err)
	}
	return nil
}

func (s *DirectorySink) CopyMedia(ctx context.Context, sourcePath string, name string) error {
	target := filepath.Join(s.dir, name)
	err := retry.Do(
		func() error {
			return s.copyFile(sourcePath, target)
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrPermission)
		}),
	)
	if err != nil {
		return fmt.Errorf("copy %s to %s: %w", sourcePath, target, err)
	}
	return nil
}

func (s *DirectorySink) copyFile(sourcePath, target string) (err error) {
	source, err := s.fs.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() {
		_ = source.Close()
	}()

	destination, err := s.fs.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}
	defer func() {
		if closeErr := destination.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close target: %w", closeErr)
		}
	}()

	if _, err := io.Copy(destination, source); err != nil {
		return fmt.Errorf("io.Copy() > %w", err)
	}
	return nil
}
