package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCompressDecompress_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "text payload",
			data: bytes.Repeat([]byte("compress me please "), 200),
		},
		{
			name: "binary payload",
			data: func() []byte {
				b := make([]byte, 4096)
				for i := range b {
					b[i] = byte(i * 13)
				}
				return b
			}(),
		},
		{
			name: "empty payload",
			data: []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srcDir := t.TempDir()
			filePath := filepath.Join(srcDir, "payload.bin")
			if err := os.WriteFile(filePath, tt.data, 0644); err != nil {
				t.Fatalf("failed to write payload: %v", err)
			}

			archivePath, err := Compress(filePath)
			if err != nil {
				t.Fatalf("Compress() error = %v", err)
			}
			if archivePath != filePath+".zip" {
				t.Errorf("archive path = %q, want %q", archivePath, filePath+".zip")
			}

			destDir := t.TempDir()
			if err := Decompress(archivePath, destDir); err != nil {
				t.Fatalf("Decompress() error = %v", err)
			}

			got, err := os.ReadFile(filepath.Join(destDir, "payload.bin"))
			if err != nil {
				t.Fatalf("failed to read extracted file: %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("extracted data differs from original (%d vs %d bytes)", len(got), len(tt.data))
			}
		})
	}
}

func TestCompress_SourceMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.bin")

	if _, err := Compress(missing); err == nil {
		t.Error("Compress() succeeded for a missing source")
	}
}

func TestDecompress_RejectsEscapingEntry(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "evil.zip")

	out, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}

	zw := zip.NewWriter(out)
	entry, err := zw.Create("../escaped.txt")
	if err != nil {
		t.Fatalf("failed to create entry: %v", err)
	}
	if _, err := entry.Write([]byte("gotcha")); err != nil {
		t.Fatalf("failed to write entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close archive: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	destDir := filepath.Join(dir, "dest")
	if err := os.Mkdir(destDir, 0755); err != nil {
		t.Fatalf("failed to create dest dir: %v", err)
	}

	if err := Decompress(archivePath, destDir); !errors.Is(err, ErrUnsafeEntryName) {
		t.Fatalf("Decompress() error = %v, want ErrUnsafeEntryName", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "escaped.txt")); !os.IsNotExist(err) {
		t.Error("escaping entry was extracted outside the destination")
	}
}
