package model

import (
	"path/filepath"

	ioutils "github.com/handiism/lessondl/internal/io"
)

// DefaultTitle is used when a player page has no usable <title>.
const DefaultTitle = "-"

// Playlist represents one resolved lesson tracklist.
//
// Playlist contains everything needed to download and organize the files:
//   - ID is the identifier the playlist was resolved from
//   - Title names the output folder
//   - Tracks holds the downloadable files in page order
//
// A Playlist is built once by the parser and not modified afterwards.
//
// Example:
//
//	pl := NewPlaylist("abc123", "Lesson 1", tracks)
//	dir := pl.Dir("/lessons", false)
//	// dir = "/lessons/Lesson 1"
type Playlist struct {
	// ID is the remote playlist identifier.
	ID string

	// Title is the playlist title. Never empty; see DefaultTitle.
	Title string

	// Tracks contains all tracks in document order.
	Tracks []*Track
}

// NewPlaylist creates a Playlist and numbers its tracks.
//
// An empty title is replaced by DefaultTitle. Track numbers are assigned
// from 1 in slice order, overwriting whatever the caller set.
func NewPlaylist(id, title string, tracks []*Track) *Playlist {
	if title == "" {
		title = DefaultTitle
	}
	for i, track := range tracks {
		track.Number = i + 1
	}

	return &Playlist{
		ID:     id,
		Title:  title,
		Tracks: tracks,
	}
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.Tracks)
}

// DirName returns the folder name for this playlist.
//
// The title is hardened with ioutils.SafeName so it is always a single path
// element. With sanitize set, the Windows-safe ioutils.SanitizeFileName is
// applied instead.
func (p *Playlist) DirName(sanitize bool) string {
	return fileName(p.Title, sanitize)
}

// Dir returns the output directory for this playlist under root.
func (p *Playlist) Dir(root string, sanitize bool) string {
	return filepath.Join(root, p.DirName(sanitize))
}

func fileName(name string, sanitize bool) string {
	if sanitize {
		return ioutils.SanitizeFileName(name)
	}
	return ioutils.SafeName(name)
}
