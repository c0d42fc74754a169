package splitter

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/binpart/binpart/core/model"
	"github.com/binpart/binpart/lib/logger"
)

var log, _ = logger.New("splitter")

var (
	ErrInvalidChunkSize = errors.New("chunk size must be a positive number of bytes")
	ErrSourceNotFound   = errors.New("source file not found")
	ErrTooManyChunks    = errors.New("source does not fit the chunk naming scheme")
)

// MaxChunks is the most chunks a single split can produce. The chunk
// index is zero-padded to exactly three digits, so 999 is a hard
// ceiling of the naming contract, not a tunable.
const MaxChunks = 999

// ChunkFilePath returns the name of chunk file number index for the
// given base path. Indices are 1-based and padded to three digits so
// that lexicographic filename order equals numeric chunk order, which
// is what the joiner sorts by.
func ChunkFilePath(basePath string, index int) string {
	return fmt.Sprintf("%s.part%03d.txt", basePath, index)
}

// Split reads sourcePath sequentially and writes one base64-encoded
// chunk file per chunkSizeBytes of input, named after the source.
// Memory use is bounded by a single reused read buffer. A zero-byte
// source is a no-op success producing zero chunks.
//
// Chunk files written before a mid-stream failure are left in place;
// the caller inspects the filesystem to determine progress.
func Split(sourcePath string, chunkSizeBytes int) (*model.SplitManifest, error) {
	if chunkSizeBytes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, chunkSizeBytes)
	}

	info, err := os.Stat(sourcePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
	}
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrSourceNotFound, sourcePath)
	}

	numChunks := (info.Size() + (int64(chunkSizeBytes) - 1)) / int64(chunkSizeBytes)
	if numChunks > MaxChunks {
		return nil, fmt.Errorf("%w: %s needs %d chunks, the 3-digit index allows %d",
			ErrTooManyChunks, sourcePath, numChunks, MaxChunks)
	}

	source, err := os.Open(sourcePath)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	manifest := model.NewSplitManifest(sourcePath, chunkSizeBytes)
	manifest.TotalSizeBytes = info.Size()

	buf := make([]byte, chunkSizeBytes)
	index := 0

	for {
		n, err := source.Read(buf)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read %s after %d chunks: %w", sourcePath, index, err)
		}

		if n == 0 {
			break
		}

		index++
		chunkPath := ChunkFilePath(sourcePath, index)
		if err := writeChunk(chunkPath, buf[:n]); err != nil {
			return nil, fmt.Errorf("write chunk %d of %s: %w", index, sourcePath, err)
		}

		manifest.ChunkPaths = append(manifest.ChunkPaths, chunkPath)
		log.Infow("chunk written", "path", chunkPath, "sizeBytes", n)
	}

	manifest.ChunkCount = index

	return &manifest, nil
}

// writeChunk persists one chunk payload as a single unwrapped base64
// string. The whole file is written in one call so a chunk file is
// never visible half-written.
func writeChunk(path string, payload []byte) error {
	encoded := base64.StdEncoding.EncodeToString(payload)

	return os.WriteFile(path, []byte(encoded), 0644)
}
