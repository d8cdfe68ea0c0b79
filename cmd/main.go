package main

import (
	"context"
	"os"

	"ptykit/cmd/configcmd"
	"ptykit/cmd/run"
	"ptykit/cmd/shared"
	"ptykit/cmd/version"
	"ptykit/pkg/log"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shared.SetupSignalHandling(cancel)

	root := &cli.Command{
		Name:  "ptykit",
		Usage: "terminal sessions with scrollback, clipboard and transcripts",
		Commands: []*cli.Command{
			run.GetCommand(),
			configcmd.GetCommand(),
			version.GetCommand(),
		},
	}

	if err := root.Run(ctx, os.Args); err != nil {
		log.ErrorMsg("%s\n", err)
		os.Exit(1)
	}
}
