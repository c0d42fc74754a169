package main

import (
	"context"
	"fmt"

	"github.com/binpart/binpart/core/courier"
	"github.com/urfave/cli/v2"
)

func newCourier(ctx *cli.Context) (*courier.Courier, error) {
	storePath := ctx.String("store")

	return courier.NewCourier(storePath)
}

func chunkSize(ctx *cli.Context) int {
	size := ctx.Int("chunk-size")
	if size == 0 {
		size = cfg.Chunks.SizeBytes
	}

	return size
}

var chunkSizeFlag = &cli.IntFlag{
	Name:  "chunk-size",
	Usage: "Maximum chunk payload size in bytes before encoding (default from CHUNK_SIZE_BYTES)",
}

var splitCmd = &cli.Command{
	Name:  "split",
	Usage: "Split a file into base64 chunk files",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "file-path",
			Required: true,
			Usage:    "Path to the file you want to split",
		},
		chunkSizeFlag,
	},
	Action: func(ctx *cli.Context) error {
		filePath := ctx.String("file-path")

		c, err := newCourier(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		cctx := context.Background()

		m, err := c.Split(cctx, filePath, chunkSize(ctx))
		if err != nil {
			return err
		}

		for _, chunkPath := range m.ChunkPaths {
			fmt.Println(chunkPath)
		}

		return nil
	},
}

var joinCmd = &cli.Command{
	Name:  "join",
	Usage: "Reassemble a file from its chunk files",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "base-path",
			Required: true,
			Usage:    "Path the reassembled file should have",
		},
	},
	Action: func(ctx *cli.Context) error {
		basePath := ctx.String("base-path")

		c, err := newCourier(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		cctx := context.Background()

		n, err := c.Join(cctx, basePath)
		if err != nil {
			return err
		}

		fmt.Printf("joined %d chunks into %s\n", n, basePath)

		return nil
	},
}

var packCmd = &cli.Command{
	Name:  "pack",
	Usage: "Compress a file into a zip archive and split the archive",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "file-path",
			Required: true,
			Usage:    "Path to the file you want to pack",
		},
		chunkSizeFlag,
	},
	Action: func(ctx *cli.Context) error {
		filePath := ctx.String("file-path")

		c, err := newCourier(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		cctx := context.Background()

		m, err := c.Pack(cctx, filePath, chunkSize(ctx))
		if err != nil {
			return err
		}

		for _, chunkPath := range m.ChunkPaths {
			fmt.Println(chunkPath)
		}

		return nil
	},
}

var unpackCmd = &cli.Command{
	Name:  "unpack",
	Usage: "Reassemble a packed archive from its chunk files and extract it",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "base-path",
			Required: true,
			Usage:    "Path of the archive the chunk files were split from (the .zip path)",
		},
		&cli.StringFlag{
			Name:  "dest",
			Value: ".",
			Usage: "Directory to extract the archive into",
		},
	},
	Action: func(ctx *cli.Context) error {
		basePath := ctx.String("base-path")
		destDir := ctx.String("dest")

		c, err := newCourier(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		cctx := context.Background()

		return c.Unpack(cctx, basePath, destDir)
	},
}

var listCmd = &cli.Command{
	Name:  "list",
	Usage: "List recorded split manifests",
	Action: func(ctx *cli.Context) error {
		c, err := newCourier(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		cctx := context.Background()

		manifests, err := c.List(cctx)
		if err != nil {
			return err
		}

		for _, m := range manifests {
			fmt.Printf("%s  %s  chunks=%d  size=%d  created=%s\n",
				m.ID, m.BasePath, m.ChunkCount, m.TotalSizeBytes, m.CreatedAt.Format("2006-01-02T15:04:05Z"))
		}

		return nil
	},
}
