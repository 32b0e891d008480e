// Package audio writes ID3 tags and playlist files for downloaded lessons.
//
// # ID3 Tagging
//
// Use the Tagger to write ID3 tags to MP3 files after they are downloaded:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(track, pl, path)
//
// The tagger sets:
//   - Album (the playlist title)
//   - Title (the track name without extension)
//   - Track number as "n/total"
//   - Artist and album artist, if configured
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true, false)
//	content := creator.CreatePlaylist(pl)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
