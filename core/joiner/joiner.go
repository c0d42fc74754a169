package joiner

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/binpart/binpart/lib/logger"
)

var log, _ = logger.New("joiner")

var (
	ErrNoChunkFiles = errors.New("no chunk files found")
	ErrCorruptChunk = errors.New("chunk file content is not valid base64")
)

// ChunkFilePattern returns the glob matching every chunk file that
// belongs to basePath.
func ChunkFilePattern(basePath string) string {
	return basePath + ".part*.txt"
}

// Join reassembles the file at basePath from its chunk files and
// returns the number of chunks consumed. Chunks are ordered by
// sorting filenames ascending, which matches numeric order only
// because the splitter zero-pads indices to fixed width.
//
// Chunk files are deleted after the output is fully written and
// closed. On a decode or write failure nothing is deleted and the
// partial output is left at basePath; it must be treated as garbage
// until a join succeeds.
func Join(basePath string) (int, error) {
	pattern := ChunkFilePattern(basePath)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, fmt.Errorf("%w: nothing matches %s", ErrNoChunkFiles, pattern)
	}

	sort.Strings(matches)

	out, err := os.OpenFile(basePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("open output %s: %w", basePath, err)
	}

	for _, chunkPath := range matches {
		payload, err := readChunk(chunkPath)
		if err != nil {
			out.Close()
			return 0, err
		}

		if _, err := out.Write(payload); err != nil {
			out.Close()
			return 0, fmt.Errorf("write output %s: %w", basePath, err)
		}
	}

	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("close output %s: %w", basePath, err)
	}

	// Output is safely on disk, chunk files are now consumed. A
	// failed removal does not invalidate the reassembled file.
	for _, chunkPath := range matches {
		if err := os.Remove(chunkPath); err != nil {
			log.Warnw("failed to remove consumed chunk file", "path", chunkPath, "error", err)
		}
	}

	log.Infow("join complete", "basePath", basePath, "chunks", len(matches))

	return len(matches), nil
}

func readChunk(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chunk %s: %w", path, err)
	}

	payload, err := base64.StdEncoding.DecodeString(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptChunk, path, err)
	}

	return payload, nil
}
