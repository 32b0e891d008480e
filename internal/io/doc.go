// Package ioutils provides file system utilities for lessondl.
//
// # Atomic Writes
//
// Downloads never write straight to their final path. WriteAtomic streams
// into "<path>.part" and renames it into place only after a complete write:
//
//	err := ioutils.WriteAtomic("/lessons/Lesson 1/a.mp3", func(w io.Writer) error {
//	    _, err := io.Copy(w, body)
//	    return err
//	})
//
// # Filename Hardening
//
// Track names and playlist titles come from a remote page. SafeName keeps
// them verbatim except for anything that could escape the target directory:
//
//	ioutils.SafeName("a/b.mp3") // Returns "a_b.mp3"
//
// SanitizeFileName additionally strips characters that Windows rejects:
//
//	ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
//
// # Directories
//
//	err := ioutils.EnsureDir("/path/to/new/directory")
//	ok := ioutils.IsRegularFile("/path/to/file.mp3")
package ioutils
