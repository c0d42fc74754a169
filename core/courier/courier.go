package courier

import (
	"context"
	"errors"
	"os"

	ds "github.com/ipfs/go-datastore"

	"github.com/binpart/binpart/core/archive"
	"github.com/binpart/binpart/core/joiner"
	"github.com/binpart/binpart/core/manifest"
	"github.com/binpart/binpart/core/model"
	"github.com/binpart/binpart/core/splitter"
	"github.com/binpart/binpart/lib/logger"
)

var log, _ = logger.New("courier")

// Courier composes the splitter, joiner and archive adapter and keeps
// manifest records of completed splits. The chunk files on disk stay
// the source of truth; manifest bookkeeping never fails an operation.
type Courier struct {
	Manifests *manifest.Store
}

func NewCourier(storePath string) (*Courier, error) {
	manifests, err := manifest.NewStore(storePath)
	if err != nil {
		return nil, err
	}

	return &Courier{
		Manifests: manifests,
	}, nil
}

// Split chunks sourcePath and records the resulting manifest.
func (c *Courier) Split(ctx context.Context, sourcePath string, chunkSizeBytes int) (*model.SplitManifest, error) {
	m, err := splitter.Split(sourcePath, chunkSizeBytes)
	if err != nil {
		return nil, err
	}

	if err := c.Manifests.Put(ctx, *m); err != nil {
		log.Warnw("split succeeded but manifest was not recorded", "basePath", m.BasePath, "error", err)
	}

	log.Infow("split complete", "basePath", m.BasePath, "chunks", m.ChunkCount, "totalSizeBytes", m.TotalSizeBytes)

	return m, nil
}

// Join reassembles basePath from its chunk files, warns if the chunk
// count on disk drifted from the recorded manifest and drops the
// record once the family is consumed.
func (c *Courier) Join(ctx context.Context, basePath string) (int, error) {
	recorded, err := c.Manifests.Get(ctx, basePath)
	if err != nil && !errors.Is(err, ds.ErrNotFound) {
		log.Warnw("failed to read recorded manifest", "basePath", basePath, "error", err)
	}

	n, err := joiner.Join(basePath)
	if err != nil {
		return 0, err
	}

	if recorded != nil && recorded.ChunkCount != n {
		log.Warnw("chunk count on disk differs from recorded manifest",
			"basePath", basePath, "joined", n, "recorded", recorded.ChunkCount)
	}

	if recorded != nil {
		if err := c.Manifests.Delete(ctx, basePath); err != nil {
			log.Warnw("failed to drop consumed manifest", "basePath", basePath, "error", err)
		}
	}

	return n, nil
}

// Pack compresses filePath into an archive and splits the archive.
// The archive is removed afterwards; its bytes live on in the chunk
// files and the original file is untouched.
func (c *Courier) Pack(ctx context.Context, filePath string, chunkSizeBytes int) (*model.SplitManifest, error) {
	archivePath, err := archive.Compress(filePath)
	if err != nil {
		return nil, err
	}

	m, err := c.Split(ctx, archivePath, chunkSizeBytes)
	if err != nil {
		return nil, err
	}

	if err := os.Remove(archivePath); err != nil {
		log.Warnw("failed to remove intermediate archive", "path", archivePath, "error", err)
	}

	return m, nil
}

// Unpack reassembles the archive at basePath, extracts it into
// destDir and removes the archive.
func (c *Courier) Unpack(ctx context.Context, basePath, destDir string) error {
	if _, err := c.Join(ctx, basePath); err != nil {
		return err
	}

	if err := archive.Decompress(basePath, destDir); err != nil {
		return err
	}

	if err := os.Remove(basePath); err != nil {
		log.Warnw("failed to remove reassembled archive", "path", basePath, "error", err)
	}

	return nil
}

func (c *Courier) List(ctx context.Context) ([]*model.SplitManifest, error) {
	return c.Manifests.All(ctx)
}

func (c *Courier) Close() error {
	return c.Manifests.Close()
}
