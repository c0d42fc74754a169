package model

import (
	"time"

	"github.com/google/uuid"
)

// SplitManifest records the outcome of one split operation. It is
// advisory bookkeeping: the chunk filenames on disk remain the only
// contract the joiner depends on.
type SplitManifest struct {
	ID             uuid.UUID
	BasePath       string
	ChunkSizeBytes int
	ChunkCount     int
	TotalSizeBytes int64
	ChunkPaths     []string
	CreatedAt      time.Time
}

type BasePath = string

func NewSplitManifest(basePath string, chunkSizeBytes int) SplitManifest {
	return SplitManifest{
		ID:             uuid.New(),
		BasePath:       basePath,
		ChunkSizeBytes: chunkSizeBytes,
		ChunkPaths:     []string{},
		CreatedAt:      time.Now().UTC(),
	}
}
