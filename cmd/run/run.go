// Package run implements the command that opens a shell in a managed
// terminal session and attaches the controlling terminal to it.
package run

import (
	"context"
	"fmt"
	"os"

	"ptykit/cmd/shared"
	"ptykit/pkg/config"
	"ptykit/pkg/entrypoint"
	"ptykit/pkg/log"

	"github.com/urfave/cli/v3"
	"pkt.systems/pslog"
)

// GetCommand ...
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "run",
		Usage:       "Open a shell in a managed terminal session",
		Description: shared.GetRunDescription(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String(shared.ConfigFlag))
			if err != nil {
				return fmt.Errorf("loading config: %s", err)
			}

			if err := overrideFromFlags(cfg, cmd); err != nil {
				return err
			}

			rCfg := &config.Run{
				Command: cmd.String(shared.CommandFlag),
				LogFile: cmd.String(shared.LogFileFlag),
			}

			if errors := config.Validate(cfg, rCfg); len(errors) > 0 {
				log.ErrorMsg("Argument validation errors:\n")
				for _, err := range errors {
					log.ErrorMsg(" - %s\n", err)
				}
				return fmt.Errorf("exiting")
			}

			logger := pslog.NewWithOptions(os.Stderr, pslog.Options{
				Mode:     pslog.ModeConsole,
				MinLevel: minLevel(cfg.Logging.Level),
			})
			ctx = pslog.ContextWithLogger(ctx, logger)

			log.InfoMsg("Starting terminal session\n")
			if err := entrypoint.Run(ctx, cfg, rCfg, nil); err != nil {
				return fmt.Errorf("running session: %s", err)
			}

			return nil
		},
		Flags: getFlags(),
	}
}

// overrideFromFlags layers explicitly set CLI flags over the loaded
// config. Flags left at their defaults leave the config alone.
func overrideFromFlags(cfg *config.Config, cmd *cli.Command) error {
	if cmd.IsSet(shared.ShellFlag) {
		cfg.Shell = cmd.String(shared.ShellFlag)
	}
	if cmd.IsSet(shared.DirFlag) {
		cfg.WorkDir = cmd.String(shared.DirFlag)
	}
	if cmd.IsSet(shared.SizeFlag) {
		cols, rows, err := shared.ParseSize(cmd.String(shared.SizeFlag))
		if err != nil {
			return fmt.Errorf("parsing size: %s", err)
		}
		cfg.Terminal.Cols = cols
		cfg.Terminal.Rows = rows
	}
	if cmd.IsSet(shared.HistoryFlag) {
		cfg.Terminal.HistoryLines = int(cmd.Int(shared.HistoryFlag))
	}
	if cmd.Bool(shared.VerboseFlag) {
		cfg.Logging.Level = "debug"
	}

	return nil
}

// minLevel maps the config logging level to a pslog level. Validation
// has already rejected anything else.
func minLevel(level string) pslog.Level {
	switch level {
	case "trace":
		return pslog.TraceLevel
	case "debug":
		return pslog.DebugLevel
	case "warn":
		return pslog.WarnLevel
	case "error":
		return pslog.ErrorLevel
	default:
		return pslog.InfoLevel
	}
}

func getFlags() []cli.Flag {
	flags := []cli.Flag{}

	flags = append(flags, shared.GetCommonFlags()...)
	flags = append(flags, shared.GetSessionFlags()...)

	return flags
}
