package audio

import (
	"fmt"
	"strings"

	"github.com/handiism/lessondl/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines carrying the track title.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL
)

// ParsePlaylistFormat maps a settings value ("m3u", "pls", "wpl", "zpl")
// to a PlaylistFormat. Matching is case-insensitive.
func ParsePlaylistFormat(s string) (PlaylistFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "m3u":
		return FormatM3U, nil
	case "pls":
		return FormatPLS, nil
	case "wpl":
		return FormatWPL, nil
	case "zpl":
		return FormatZPL, nil
	default:
		return FormatM3U, fmt.Errorf("unknown playlist format %q", s)
	}
}

// Extension returns the file extension for the format, including the dot.
func (f PlaylistFormat) Extension() string {
	switch f {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// String returns the settings name of the format.
func (f PlaylistFormat) String() string {
	return strings.TrimPrefix(f.Extension(), ".")
}

// PlaylistCreator generates playlist files in various formats.
//
// PlaylistCreator takes a lesson playlist and produces a playlist file
// listing all of its tracks. Entries are bare file names, so the playlist
// file must live in the same directory as the tracks.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true, false)
//	content := creator.CreatePlaylist(pl)
//	path := filepath.Join(pl.Dir(root, false), creator.FileName(pl))
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Lesson 1 - Part 1
//	// Lesson 1 - Part 1.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines
	sanitize bool // must match the setting used to name the tracks
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - format: The playlist format to generate
//   - extended: For M3U format, whether to include #EXTINF lines
//     (ignored for other formats)
//   - sanitize: Whether track file names were produced with
//     ioutils.SanitizeFileName
func NewPlaylistCreator(format PlaylistFormat, extended, sanitize bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
		sanitize: sanitize,
	}
}

// FileName returns the playlist file name for pl, e.g. "Lesson 1.m3u".
func (p *PlaylistCreator) FileName(pl *model.Playlist) string {
	return pl.DirName(p.sanitize) + p.format.Extension()
}

// CreatePlaylist generates playlist content for pl.
//
// The library does not publish durations, so length fields are written as
// -1 (unknown) where the format has one.
func (p *PlaylistCreator) CreatePlaylist(pl *model.Playlist) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(pl)
	case FormatWPL:
		return p.createWPL(pl)
	case FormatZPL:
		return p.createZPL(pl)
	default:
		return p.createM3U(pl)
	}
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:-1,Title
//	filename1.mp3
func (p *PlaylistCreator) createM3U(pl *model.Playlist) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
		fmt.Fprintf(&sb, "#PLAYLIST:%s\n", pl.Title)
	}

	for _, track := range pl.Tracks {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:-1,%s\n", track.Title())
		}
		sb.WriteString(track.FileName(p.sanitize) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(pl *model.Playlist) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for _, track := range pl.Tracks {
		fmt.Fprintf(&sb, "File%d=%s\n", track.Number, track.FileName(p.sanitize))
		fmt.Fprintf(&sb, "Title%d=%s\n", track.Number, track.Title())
		fmt.Fprintf(&sb, "Length%d=-1\n", track.Number)
	}

	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", pl.Len())
	sb.WriteString("Version=2\n")

	return sb.String()
}

func (p *PlaylistCreator) createWPL(pl *model.Playlist) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(pl.Title))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range pl.Tracks {
		fmt.Fprintf(&sb, "      <media src=\"%s\"/>\n", escapeXML(track.FileName(p.sanitize)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist. Like WPL, with the
// playlist title repeated on each entry as albumTitle.
func (p *PlaylistCreator) createZPL(pl *model.Playlist) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(pl.Title))
	sb.WriteString("    <meta name=\"Generator\" content=\"lessondl\"/>\n")
	fmt.Fprintf(&sb, "    <meta name=\"ItemCount\" content=\"%d\"/>\n", pl.Len())
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range pl.Tracks {
		fmt.Fprintf(&sb, "      <media src=\"%s\" albumTitle=\"%s\" trackTitle=\"%s\"/>\n",
			escapeXML(track.FileName(p.sanitize)),
			escapeXML(pl.Title),
			escapeXML(track.Title()))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)
