package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/handiism/lessondl/internal/config"
	"github.com/handiism/lessondl/internal/library"
	"github.com/handiism/lessondl/internal/logging"
	"github.com/handiism/lessondl/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotEnv()

	settings, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	settings.ApplyEnv()
	if err := settings.Validate(); err != nil {
		return err
	}

	// Missing tokens are reported by the UI rather than here.
	creds, err := settings.ResolveCredentials()
	if err != nil {
		creds = library.Credentials{}
	}

	// The terminal belongs to the UI, so logs only go to a file.
	logFile := settings.LogFile
	if logFile == "" {
		logFile = filepath.Join(filepath.Dir(config.DefaultPath()), "lessondl-tui.log")
	}
	logger, closer, err := logging.New(logging.Options{
		Level:      settings.LogLevel,
		Writer:     io.Discard,
		File:       logFile,
		Timestamps: true,
	})
	if err != nil {
		return err
	}
	defer closer.Close()
	logger, _ = logging.WithRun(logger)

	return tui.Run(settings, creds, logger)
}
