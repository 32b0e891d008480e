package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/handiism/lessondl/internal/audio"
	"github.com/handiism/lessondl/internal/config"
	"github.com/handiism/lessondl/internal/http"
	ioutils "github.com/handiism/lessondl/internal/io"
	"github.com/handiism/lessondl/internal/library"
	"github.com/handiism/lessondl/internal/model"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Tags printed after a track line.
const (
	TagExists = "\t\t[EXISTS]"
	TagOK     = "\t\t[OK]"
)

// Manager coordinates playlist resolution and downloads.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	library    *library.Library

	playlists       []*model.Playlist
	totalBytes      int64
	receivedBytes   int64
	totalFiles      int32
	downloadedFiles int32
	skippedFiles    int32

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	client := http.NewClientWithOptions(settings.ToClientOptions())

	return &Manager{
		settings:   settings,
		httpClient: client,
		library:    library.New(client, settings.BaseURL),
		onProgress: onProgress,
	}
}

// Run resolves and downloads each id in turn into settings.OutputPath.
//
// Ids are processed one after another; the first error aborts the run and
// later ids are not attempted.
func (m *Manager) Run(ctx context.Context, creds library.Credentials, ids ...string) error {
	for _, id := range ids {
		pl, err := m.Resolve(ctx, id, creds)
		if err != nil {
			return err
		}
		if err := m.DownloadAll(ctx, pl, m.settings.OutputPath); err != nil {
			return err
		}
	}
	return nil
}

// Initialize resolves every id without downloading anything. Use
// StartDownloads afterwards. The first error aborts.
func (m *Manager) Initialize(ctx context.Context, creds library.Credentials, ids ...string) error {
	for _, id := range ids {
		if _, err := m.Resolve(ctx, id, creds); err != nil {
			return err
		}
	}
	return nil
}

// Resolve fetches and parses the playlist for id and registers it with the
// manager.
func (m *Manager) Resolve(ctx context.Context, id string, creds library.Credentials) (*model.Playlist, error) {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Trying to resolve tracklist with ID %s...", id), Level: LevelInfo})
	m.progress(ProgressEvent{Message: fmt.Sprintf("\tplayer page %s", m.library.PageURL(id)), Level: LevelVerbose})

	pl, err := m.library.Resolve(ctx, id, creds)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.playlists = append(m.playlists, pl)
	m.mu.Unlock()
	atomic.AddInt32(&m.totalFiles, int32(pl.Len()))

	return pl, nil
}

// StartDownloads downloads all initialized playlists, one at a time, into
// settings.OutputPath.
func (m *Manager) StartDownloads(ctx context.Context) error {
	for _, pl := range m.Playlists() {
		if err := m.DownloadAll(ctx, pl, m.settings.OutputPath); err != nil {
			return err
		}
	}
	return nil
}

// DownloadAll downloads every track of pl into outputRoot/<title>.
//
// Tracks are fetched sequentially in playlist order. A track whose target
// already exists as a regular file is skipped without any network request.
// Any transport or filesystem error aborts the remaining tracks.
func (m *Manager) DownloadAll(ctx context.Context, pl *model.Playlist, outputRoot string) error {
	sanitize := m.settings.SanitizeFileNames
	dir := pl.Dir(outputRoot, sanitize)

	if err := ioutils.EnsureDir(dir); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Getting tracklist %s (%d tracks)", pl.Title, pl.Len()), Level: LevelInfo})

	if m.settings.ProbeSizes {
		if _, err := m.Probe(ctx, pl, dir); err != nil {
			return err
		}
	}

	tagger := audio.NewTagger(m.settings.ToTagConfig())

	var downloaded, skipped int
	var received int64
	for _, track := range pl.Tracks {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.progress(ProgressEvent{Message: fmt.Sprintf("\tGetting track %d/%d - %s...", track.Number, pl.Len(), track.Name), Level: LevelInfo})
		if track.Checksum != "" {
			m.progress(ProgressEvent{Message: fmt.Sprintf("\t\tchecksum %s (not verified)", track.Checksum), Level: LevelVerbose})
		}

		path := track.Path(dir, sanitize)
		if ioutils.IsRegularFile(path) {
			m.progress(ProgressEvent{Message: TagExists, Level: LevelInfo})
			atomic.AddInt32(&m.skippedFiles, 1)
			skipped++
			continue
		}

		removed, err := ioutils.RemovePartial(path)
		if err != nil {
			return fmt.Errorf("remove stale partial download: %w", err)
		}
		if removed {
			m.progress(ProgressEvent{Message: "\t\tremoved stale partial download", Level: LevelVerbose})
		}

		n, err := m.downloadTrack(ctx, track, path)
		if err != nil {
			return fmt.Errorf("track %d/%d %s: %w", track.Number, pl.Len(), track.Name, err)
		}
		m.progress(ProgressEvent{Message: TagOK, Level: LevelInfo})
		downloaded++
		received += n

		if m.settings.ModifyTags && audio.CanTag(path) {
			if err := tagger.SaveTags(track, pl, path); err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", track.Name, err), Level: LevelWarning})
			}
		}
	}

	if m.settings.CreatePlaylist {
		m.writePlaylist(ctx, pl, dir)
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Finished %s: %d downloaded, %d skipped, %s", pl.Title, downloaded, skipped, formatBytes(received)),
		Level:   LevelSuccess,
	})
	return nil
}

// Probe sums the remote sizes of the tracks in pl that are not yet present
// in dir, using concurrent HEAD requests. Tracks already on disk are never
// contacted. Sizes the server does not report count as zero.
func (m *Manager) Probe(ctx context.Context, pl *model.Playlist, dir string) (int64, error) {
	limit := m.settings.ProbeConcurrency
	if limit <= 0 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var total int64
	var missing int32
	for _, track := range pl.Tracks {
		if ioutils.IsRegularFile(track.Path(dir, m.settings.SanitizeFileNames)) {
			continue
		}
		missing++
		g.Go(func() error {
			size, err := m.httpClient.GetFileSize(ctx, track.URL)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				m.progress(ProgressEvent{Message: fmt.Sprintf("Could not get size of %s: %v", track.Name, err), Level: LevelVerbose})
				return nil
			}
			if size > 0 {
				atomic.AddInt64(&total, size)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	atomic.AddInt64(&m.totalBytes, total)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Expecting %s across %d tracks", formatBytes(total), missing), Level: LevelVerbose})
	return total, nil
}

// GetProgress returns current download progress. Skipped tracks count as
// received files.
func (m *Manager) GetProgress() (received, total int64, filesReceived, filesTotal int32) {
	return atomic.LoadInt64(&m.receivedBytes), atomic.LoadInt64(&m.totalBytes),
		atomic.LoadInt32(&m.downloadedFiles) + atomic.LoadInt32(&m.skippedFiles), atomic.LoadInt32(&m.totalFiles)
}

// Playlists returns the playlists resolved so far.
func (m *Manager) Playlists() []*model.Playlist {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*model.Playlist(nil), m.playlists...)
}

// GetPlaylistNames returns display names of all resolved playlists.
func (m *Manager) GetPlaylistNames() []string {
	playlists := m.Playlists()
	names := make([]string, len(playlists))
	for i, pl := range playlists {
		names[i] = fmt.Sprintf("%s (%d tracks)", pl.Title, pl.Len())
	}
	return names
}

func (m *Manager) downloadTrack(ctx context.Context, track *model.Track, path string) (int64, error) {
	var last int64
	n, err := m.httpClient.DownloadFile(ctx, track.URL, path, func(written, _ int64) {
		atomic.AddInt64(&m.receivedBytes, written-last)
		last = written
	})
	if err != nil {
		// bytes of a discarded download do not count
		atomic.AddInt64(&m.receivedBytes, -last)
		if errors.Is(err, context.Canceled) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Cancelled %s", track.Name), Level: LevelWarning})
		}
		return 0, err
	}

	atomic.AddInt32(&m.downloadedFiles, 1)
	return n, nil
}

func (m *Manager) writePlaylist(ctx context.Context, pl *model.Playlist, dir string) {
	creator := audio.NewPlaylistCreator(
		m.settings.ToPlaylistFormat(),
		m.settings.M3UExtended,
		m.settings.SanitizeFileNames,
	)
	path := filepath.Join(dir, creator.FileName(pl))
	content := creator.CreatePlaylist(pl)

	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist for %s", pl.Title), Level: LevelSuccess})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
