package main

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/handiism/lessondl/internal/config"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes a default configuration file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		path = config.DefaultPath()
	}

	if err := config.CreateFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("%s\n", path)
}

// ConfigShow prints the effective settings as TOML with tokens masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	settings, err := r.loadSettings(cmd)
	if err != nil {
		return err
	}

	shown := *settings
	shown.Credentials.ElggPerm = mask(shown.Credentials.ElggPerm)
	shown.Credentials.SessionID = mask(shown.Credentials.SessionID)

	if err := toml.NewEncoder(r.output).Encode(shown); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return nil
}

func mask(secret string) string {
	if len(secret) <= 4 {
		if secret == "" {
			return ""
		}
		return "****"
	}
	return secret[:4] + "****"
}
