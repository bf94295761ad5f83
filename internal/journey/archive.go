package journey

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

// Archive compresses every file below dir into a zip file at archivePath and
// returns the number of files written. Paths inside the archive are relative
// to dir. A partially written archive is removed on failure.
func Archive(ctx context.Context, fsys afero.Fs, dir string, archivePath string) (count int, err error) {
	out, err := fsys.OpenFile(archivePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("create archive %s: %w", archivePath, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close archive %s: %w", archivePath, closeErr)
		}
		if err != nil {
			_ = fsys.Remove(archivePath)
			count = 0
		}
	}()

	zw := zip.NewWriter(out)
	archiveFile := filepath.Clean(archivePath)
	err = afero.Walk(fsys, dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() || filepath.Clean(path) == archiveFile {
			return nil
		}

		name, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("filepath.Rel(%s, %s) > %w", dir, path, err)
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("zip.FileInfoHeader(%s) > %w", path, err)
		}
		header.Name = filepath.ToSlash(name)
		header.Method = zip.Deflate
		if err := addFile(fsys, zw, header, path); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("afero.Walk(%s) > %w", dir, err)
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("zip.Writer.Close() > %w", err)
	}
	return count, nil
}

func addFile(fsys afero.Fs, zw *zip.Writer, header *zip.FileHeader, path string) error {
	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("zip.Writer.CreateHeader(%s) > %w", header.Name, err)
	}
	file, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := io.Copy(w, file); err != nil {
		return fmt.Errorf("io.Copy(%s) > %w", path, err)
	}
	return nil
}
