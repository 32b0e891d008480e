// Package model defines the core data structures used throughout lessondl.
//
// # Playlist
//
// Playlist is a titled, ordered list of tracks resolved from one remote id:
//
//	pl := model.NewPlaylist(id, "Lesson 1", tracks)
//	fmt.Println(pl.Dir("/lessons", false)) // Where to save the files
//
// # Track
//
// Track is one downloadable file:
//
//	track := model.NewTrack("a.mp3", "https://cdn.example.com/a.mp3", "")
//	fmt.Println(track.Path(dir, false)) // Full path where the track will be saved
//
// Names are used verbatim except for path separators, NUL and the special
// names "." and "..", so a track can never be written outside its playlist
// folder.
package model
