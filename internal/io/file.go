// Package ioutils provides file system utilities for lessondl.
//
// This package contains functions for:
//   - Atomic file writing through a ".part" sibling
//   - Filename hardening and sanitization
//   - Directory creation and existence checks
package ioutils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PartialSuffix is appended to a target path while its content is being written.
const PartialSuffix = ".part"

var (
	invalidChars     = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	repeatedSpaces   = regexp.MustCompile(`\s+`)
	separatorOrNulls = regexp.MustCompile(`[/\\\x00]`)
)

// WriteFile writes data to a file atomically, creating it if necessary.
//
// The file is created with mode 0644. An existing file at path is replaced
// only once the new content has been fully written.
//
// Example:
//
//	playlistContent := []byte("#EXTM3U\n...")
//	err := WriteFile(ctx, "/lessons/Lesson 1/Lesson 1.m3u", playlistContent)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteAtomic writes to path through a temporary sibling file.
//
// The write callback receives the temporary file (path + PartialSuffix).
// When it returns nil, the file is synced, closed and renamed onto path.
// When it returns an error, or any of those steps fail, the temporary file
// is removed and path is left untouched.
//
// A reader can therefore never observe a truncated file at path: either the
// previous content (or nothing) is there, or the complete new content.
//
// Example:
//
//	err := WriteAtomic("/lessons/Lesson 1/a.mp3", func(w io.Writer) error {
//	    _, err := io.Copy(w, resp.Body)
//	    return err
//	})
func WriteAtomic(path string, write func(w io.Writer) error) (err error) {
	tmpPath := path + PartialSuffix

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = write(f); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmpPath, err)
	}
	return nil
}

// SafeName hardens a remote-supplied name for use as a single path element.
//
// Characters are kept as they are, except:
//   - path separators and NUL become an underscore
//   - "", "." and ".." become a single underscore
//
// The result is NFC-normalized, so the same name typed on different
// platforms maps to the same file.
//
// Example:
//
//	SafeName("Lesson 1")      // Returns "Lesson 1"
//	SafeName("../etc/passwd") // Returns ".._etc_passwd"
func SafeName(name string) string {
	name = norm.NFC.String(name)
	name = separatorOrNulls.ReplaceAllString(name, "_")

	switch name {
	case "", ".", "..":
		return "_"
	}

	return name
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// This function ensures filenames are valid across different operating systems,
// particularly Windows which has the most restrictive naming rules.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2")     // Returns "Song_ Part 1_2"
//	SanitizeFileName("Track...")           // Returns "Track"
//	SanitizeFileName("Name   with  spaces") // Returns "Name with spaces"
func SanitizeFileName(name string) string {
	name = norm.NFC.String(name)
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	name = strings.TrimRight(name, " ")

	return SafeName(name)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/lessons/Lesson 1")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// IsRegularFile reports whether path exists and is a regular file.
//
// Directories, sockets and dangling entries all report false.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// RemovePartial deletes a leftover path + PartialSuffix file, if any, and
// reports whether one was removed.
func RemovePartial(path string) (bool, error) {
	err := os.Remove(filepath.Clean(path) + PartialSuffix)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
