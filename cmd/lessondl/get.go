package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/handiism/lessondl/internal/download"
	"github.com/urfave/cli/v3"
)

// ErrNoIDs is returned when a command needs at least one playlist id.
var ErrNoIDs = errors.New("at least one playlist ID is required")

// Get resolves and downloads each playlist id given as an argument.
func (r *Runner) Get(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return ErrNoIDs
	}

	settings, err := r.loadSettings(cmd)
	if err != nil {
		return err
	}
	creds, err := settings.ResolveCredentials()
	if err != nil {
		return err
	}

	console, logger, closer, err := r.newRunLogger(settings)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Debug("starting", "ids", ids, "output", settings.OutputPath, "base_url", settings.BaseURL)

	manager := download.NewManager(settings, progressLogger(console, logger))
	if err := manager.Run(ctx, creds, ids...); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	received, total, files, totalFiles := manager.GetProgress()
	logger.Debug("done", "files", fmt.Sprintf("%d/%d", files, totalFiles), "received", received, "expected", total)
	return nil
}
