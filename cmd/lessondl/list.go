package main

import (
	"context"

	"github.com/handiism/lessondl/internal/download"
	"github.com/urfave/cli/v3"
)

type trackJSON struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Checksum string `json:"checksum,omitempty"`
}

type playlistJSON struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Tracks []trackJSON `json:"tracks"`
}

// List resolves playlists and prints their tracks without downloading.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
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

	manager := download.NewManager(settings, progressLogger(console, logger))
	if err := manager.Initialize(ctx, creds, ids...); err != nil {
		return err
	}

	playlists := manager.Playlists()

	if cmd.Bool("json") {
		out := make([]playlistJSON, 0, len(playlists))
		for _, pl := range playlists {
			entry := playlistJSON{ID: pl.ID, Title: pl.Title, Tracks: []trackJSON{}}
			for _, track := range pl.Tracks {
				entry.Tracks = append(entry.Tracks, trackJSON{
					Number:   track.Number,
					Name:     track.Name,
					URL:      track.URL,
					Checksum: track.Checksum,
				})
			}
			out = append(out, entry)
		}
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	for _, pl := range playlists {
		if err := r.writePlain("%s (%d tracks)\n", pl.Title, pl.Len()); err != nil {
			return err
		}
		for _, track := range pl.Tracks {
			if err := r.writePlain("  %d. %s\n", track.Number, track.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
