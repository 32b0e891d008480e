package main

import "github.com/urfave/cli/v3"

// settingsFlags are accepted by every command that loads settings.
func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file (default: user config dir)",
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "Library host serving player pages",
		},
		&cli.StringFlag{
			Name:  "elggperm",
			Usage: "Value of the elggperm session cookie",
		},
		&cli.StringFlag{
			Name:  "session-id",
			Usage: "Value of the ASP.NET_SessionId session cookie",
		},
		&cli.StringFlag{
			Name:  "curl-file",
			Usage: "Read session cookies from a saved browser \"Copy as cURL\" command",
		},
		&cli.FloatFlag{
			Name:  "rate",
			Usage: "Maximum requests per second (0 for unlimited)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Also write logs to this file (rotated)",
		},
	}
}

// getCommand downloads playlists.
func getCommand(r *Runner) *cli.Command {
	flags := append(settingsFlags(),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output root; each playlist goes into <output>/<title>",
		},
		&cli.BoolFlag{
			Name:  "playlist",
			Usage: "Write a playlist file next to the tracks",
		},
		&cli.StringFlag{
			Name:  "playlist-format",
			Usage: "Playlist format: m3u, pls, wpl, zpl",
		},
		&cli.BoolFlag{
			Name:  "tags",
			Usage: "Write ID3 tags into downloaded .mp3 files",
		},
		&cli.BoolFlag{
			Name:  "sanitize",
			Usage: "Make file names safe for Windows filesystems",
		},
		&cli.BoolFlag{
			Name:  "probe",
			Usage: "Report the expected download size before starting",
		},
	)

	return &cli.Command{
		Name:      "get",
		Usage:     "Download one or more playlists",
		ArgsUsage: "ID [ID...]",
		Flags:     flags,
		Action:    r.Get,
	}
}

// listCommand prints a playlist without downloading it.
func listCommand(r *Runner) *cli.Command {
	flags := append(settingsFlags(),
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	)

	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "Show the tracks of one or more playlists",
		ArgsUsage: "ID [ID...]",
		Flags:     flags,
		Action:    r.List,
	}
}

// configCommand manages the settings file.
func configCommand(r *Runner) *cli.Command {
	pathFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file (default: user config dir)",
	}

	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a configuration file with default values",
				Flags:  []cli.Flag{pathFlag},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Flags:  settingsFlags(),
				Action: r.ConfigShow,
			},
		},
	}
}
