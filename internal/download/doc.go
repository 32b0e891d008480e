// Package download provides the download orchestration logic for
// resolving lesson playlists and fetching their tracks.
//
// # Manager
//
// The Manager coordinates the entire download process:
//
//  1. Fetch the player page for each playlist id
//  2. Parse the tracklist
//  3. Create <output>/<title>
//  4. Download missing tracks one at a time, skipping existing files
//  5. Tag MP3 files with ID3 metadata (optional)
//  6. Generate a playlist file (optional)
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Fprintln(os.Stderr, event.Message)
//	})
//
//	err := manager.Run(ctx, creds, "abc123")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or, to show what will be downloaded first:
//
//	err := manager.Initialize(ctx, creds, ids...)
//	fmt.Println(manager.GetPlaylistNames())
//	err = manager.StartDownloads(ctx)
//
// # Skipping
//
// A track is skipped when a regular file already exists at its target path.
// Contents are not compared and no request is made for skipped tracks, so a
// second run over the same directory is free. Partial downloads are written
// to "<name>.part" and only renamed into place when complete, so an
// interrupted run never leaves a file that would be skipped later.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// The Info messages form the classic transcript:
//
//	Trying to resolve tracklist with ID abc123...
//	Getting tracklist Lesson 1 (2 tracks)
//		Getting track 1/2 - a.mp3...
//			[OK]
//		Getting track 2/2 - b.mp3...
//			[EXISTS]
//
// The callback may be invoked from several goroutines while sizes are being
// probed and must be safe for concurrent use.
package download
