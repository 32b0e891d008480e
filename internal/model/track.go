package model

import (
	"path/filepath"
	"strings"
)

// Track represents a single downloadable file within a playlist.
//
// Track contains:
//   - Number, the 1-indexed position used for display and tagging
//   - Name, used both as display label and as output file name
//   - URL, where the file is downloaded from
//   - Checksum, the raw checksum attribute from the page
//
// The checksum uses an unidentified algorithm (it is not md5, sha1, sha256,
// crc32 or adler32) and is never verified. It is kept only so it can be
// logged.
type Track struct {
	// Number is the track position (1-indexed).
	Number int

	// Name is the track name as listed on the page.
	Name string

	// URL is the download location.
	URL string

	// Checksum is the unverified checksum attribute. May be empty.
	Checksum string
}

// NewTrack creates a new Track. The number is assigned by NewPlaylist.
func NewTrack(name, url, checksum string) *Track {
	return &Track{
		Name:     name,
		URL:      url,
		Checksum: checksum,
	}
}

// FileName returns the on-disk file name for this track.
func (t *Track) FileName(sanitize bool) string {
	return fileName(t.Name, sanitize)
}

// Path returns the full file path for this track inside dir.
func (t *Track) Path(dir string, sanitize bool) string {
	return filepath.Join(dir, t.FileName(sanitize))
}

// Title returns the track name without its file extension.
//
// Example:
//
//	NewTrack("Lesson 1 - Part 2.mp3", url, "").Title() // "Lesson 1 - Part 2"
func (t *Track) Title() string {
	return strings.TrimSuffix(t.Name, filepath.Ext(t.Name))
}
