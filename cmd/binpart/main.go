package main

import (
	"os"

	"github.com/binpart/binpart/core/courier"
	"github.com/binpart/binpart/lib/logger"
	"github.com/urfave/cli/v2"
)

var log, _ = logger.New("binpart")

var cfg *courier.Config

func main() {
	var err error
	cfg, err = courier.GetConfig()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	app := &cli.App{
		Name:  "binpart",
		Usage: "Ship binary files through text-only channels as bounded base64 chunk files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "store",
				Value: cfg.Store.Path,
				Usage: "Path to the manifest store directory",
			},
		},
		Commands: []*cli.Command{
			splitCmd,
			joinCmd,
			packCmd,
			unpackCmd,
			listCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalw("command failed", "error", err)
	}
}
