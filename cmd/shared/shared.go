// Package shared provides common CLI flag definitions and utility functions
// used across ptykit's command-line interface.
package shared

import (
	"strings"

	"github.com/urfave/cli/v3"
)

const categoryCommon = "common"

// ConfigFlag is the name of the flag to specify the config file location.
const ConfigFlag = "config"

// VerboseFlag is the name of the flag to enable verbose debug logging.
const VerboseFlag = "verbose"

// GetRunDescription returns the description text for the run command.
func GetRunDescription() string {
	return strings.Join([]string{
		"Opens a shell on a fresh PTY and attaches the controlling terminal to it.",
		"Ctrl+Shift+C and Ctrl+Shift+V drive the clipboard, Shift+PageUp and",
		"Shift+PageDown page through scrollback. The session ends when the shell",
		"exits or the process receives a termination signal.",
	}, "\n")
}

// GetCommonFlags returns the CLI flags shared by all commands.
func GetCommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     ConfigFlag,
			Aliases:  []string{"c"},
			Usage:    "Config file, leave empty for the per-user location",
			Category: categoryCommon,
			Value:    "",
			Required: false,
		},
		&cli.BoolFlag{
			Name:     VerboseFlag,
			Aliases:  []string{"v"},
			Usage:    "Verbose debug logging",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
	}
}

const categorySession = "session"

// ShellFlag is the name of the flag to pick the shell program.
const ShellFlag = "shell"

// DirFlag is the name of the flag to set the shell working directory.
const DirFlag = "dir"

// CommandFlag is the name of the flag to run a command in the new session.
const CommandFlag = "command"

// SizeFlag is the name of the flag to fix the terminal size.
const SizeFlag = "size"

// HistoryFlag is the name of the flag to cap scrollback history.
const HistoryFlag = "history"

// LogFileFlag is the name of the flag to record a session transcript.
const LogFileFlag = "log"

// GetSessionFlags returns the CLI flags specific to the run command.
func GetSessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     ShellFlag,
			Aliases:  []string{"s"},
			Usage:    "Shell program, leave empty to use $SHELL",
			Category: categorySession,
			Value:    "",
			Required: false,
		},
		&cli.StringFlag{
			Name:     DirFlag,
			Aliases:  []string{"d"},
			Usage:    "Working directory for the shell",
			Category: categorySession,
			Value:    "",
			Required: false,
		},
		&cli.StringFlag{
			Name:     CommandFlag,
			Aliases:  []string{"e"},
			Usage:    "Command typed into the session once the shell is up",
			Category: categorySession,
			Value:    "",
			Required: false,
		},
		&cli.StringFlag{
			Name:     SizeFlag,
			Aliases:  []string{},
			Usage:    "Fixed terminal size as COLSxROWS, e.g. 120x40, leave empty to probe",
			Category: categorySession,
			Value:    "",
			Required: false,
		},
		&cli.IntFlag{
			Name:     HistoryFlag,
			Aliases:  []string{},
			Usage:    "Scrollback history in lines, 0 disables scrollback",
			Category: categorySession,
			Value:    10000,
			Required: false,
		},
		&cli.StringFlag{
			Name:     LogFileFlag,
			Aliases:  []string{"l"},
			Usage:    "Record raw session output to a transcript file",
			Category: categorySession,
			Value:    "",
			Required: false,
		},
	}
}
