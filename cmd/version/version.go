// Package version implements the command that prints the build version.
package version

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Version is stamped at build time via ldflags.
var Version = "unknown"

// GetCommand ...
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Program version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("ptykit %s\n", Version)
			return nil
		},
		Flags: []cli.Flag{},
	}
}
