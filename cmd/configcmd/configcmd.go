// Package configcmd implements the command that manages the on-disk
// configuration file.
package configcmd

import (
	"context"
	"fmt"

	"ptykit/cmd/shared"
	"ptykit/pkg/config"
	"ptykit/pkg/log"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const categoryConfig = "config"

const forceFlag = "force"

// GetCommand ...
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			getInitCommand(),
			getShowCommand(),
		},
	}
}

func getInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default config file",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := config.WriteDefault(cmd.String(shared.ConfigFlag), cmd.Bool(forceFlag))
			if err != nil {
				return fmt.Errorf("writing config: %s", err)
			}

			log.InfoMsg("Wrote default config to %s\n", path)

			return nil
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:     forceFlag,
				Aliases:  []string{"f"},
				Usage:    "Overwrite an existing config file",
				Category: categoryConfig,
				Value:    false,
				Required: false,
			},
		}, shared.GetCommonFlags()...),
	}
}

func getShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the effective configuration as YAML",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String(shared.ConfigFlag))
			if err != nil {
				return fmt.Errorf("loading config: %s", err)
			}

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("yaml.Marshal(): %s", err)
			}

			fmt.Printf("%s", out)

			return nil
		},
		Flags: shared.GetCommonFlags(),
	}
}
