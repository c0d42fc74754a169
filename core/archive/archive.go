package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
)

var (
	ErrUnsafeEntryName = errors.New("archive entry escapes the destination directory")
)

const ArchiveSuffix = ".zip"

// ArchivePath returns the archive path Compress produces for filePath.
func ArchivePath(filePath string) string {
	return filePath + ArchiveSuffix
}

// Compress wraps filePath in a zip archive next to it, storing the
// file under its base name, and returns the archive path.
func Compress(filePath string) (string, error) {
	source, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("compress %s: %w", filePath, err)
	}
	defer source.Close()

	archivePath := ArchivePath(filePath)
	out, err := os.Create(archivePath)
	if err != nil {
		return "", fmt.Errorf("compress %s: %w", filePath, err)
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	entry, err := zw.CreateHeader(&zip.FileHeader{
		Name:   filepath.Base(filePath),
		Method: zip.Deflate,
	})
	if err == nil {
		_, err = io.Copy(entry, source)
	}
	if err != nil {
		zw.Close()
		out.Close()
		return "", fmt.Errorf("compress %s: %w", filePath, err)
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return "", fmt.Errorf("compress %s: %w", filePath, err)
	}

	if err := out.Close(); err != nil {
		return "", fmt.Errorf("compress %s: %w", filePath, err)
	}

	return archivePath, nil
}

// Decompress extracts every entry of archivePath into destDir.
func Decompress(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", archivePath, err)
	}
	defer r.Close()

	r.RegisterDecompressor(zip.Deflate, flate.NewReader)

	for _, entry := range r.File {
		if err := extract(entry, destDir); err != nil {
			return fmt.Errorf("decompress %s: %w", archivePath, err)
		}
	}

	return nil
}

func extract(entry *zip.File, destDir string) error {
	destPath := filepath.Join(destDir, entry.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("%w: %s", ErrUnsafeEntryName, entry.Name)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entry.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
