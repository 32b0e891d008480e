package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/handiism/lessondl/internal/audio"
	lhttp "github.com/handiism/lessondl/internal/http"
	ioutils "github.com/handiism/lessondl/internal/io"
	"github.com/handiism/lessondl/internal/library"
)

// DefaultFileName is the settings file name inside the user config dir.
const DefaultFileName = "config.toml"

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	OutputPath        string  `toml:"output_path"`
	BaseURL           string  `toml:"base_url"`
	Timeout           string  `toml:"timeout"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	SanitizeFileNames bool    `toml:"sanitize_file_names"`

	// Playlist settings
	CreatePlaylist bool   `toml:"create_playlist"`
	PlaylistFormat string `toml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `toml:"m3u_extended"`

	// Tag settings
	ModifyTags bool   `toml:"modify_tags"`
	TagArtist  string `toml:"tag_artist"`

	// Size probe
	ProbeSizes       bool `toml:"probe_sizes"`
	ProbeConcurrency int  `toml:"probe_concurrency"`

	// Logging
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	Credentials CredentialsConfig `toml:"credentials"`
}

// CredentialsConfig holds the session tokens, or a path to a browser
// "Copy as cURL" dump they can be read from.
type CredentialsConfig struct {
	ElggPerm  string `toml:"elggperm"`
	SessionID string `toml:"session_id"`
	CurlFile  string `toml:"curl_file"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OutputPath:        ".",
		BaseURL:           library.DefaultBaseURL,
		Timeout:           lhttp.DefaultTimeout.String(),
		RequestsPerSecond: 0,
		SanitizeFileNames: false,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		ModifyTags: false,
		TagArtist:  "Michel Thomas",

		ProbeSizes:       false,
		ProbeConcurrency: 4,

		LogLevel: "info",
	}
}

// DefaultPath returns the settings path under the user config directory,
// e.g. ~/.config/lessondl/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(dir, "lessondl", DefaultFileName)
}

// Load reads settings from a TOML file.
//
// A missing file is not an error; defaults are returned. Keys absent from
// the file keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return settings, nil
}

// Save writes settings to a TOML file, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	return ioutils.WriteAtomic(path, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(s)
	})
}

// CreateFile writes default settings to path. It fails with
// ErrConfigExists rather than overwrite an existing file.
func CreateFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	}
	return DefaultSettings().Save(path)
}

// TimeoutDuration parses Timeout. An empty or invalid value yields
// lhttp.DefaultTimeout.
func (s *Settings) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return lhttp.DefaultTimeout
	}
	return d
}

// Validate checks values that would otherwise fail late, mid-download.
func (s *Settings) Validate() error {
	if s.Timeout != "" {
		if _, err := time.ParseDuration(s.Timeout); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
		}
	}
	if s.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	if _, err := audio.ParsePlaylistFormat(s.PlaylistFormat); err != nil {
		return err
	}
	return nil
}

// ToClientOptions converts settings to HTTP client options.
func (s *Settings) ToClientOptions() lhttp.Options {
	return lhttp.Options{
		Timeout:           s.TimeoutDuration(),
		RequestsPerSecond: s.RequestsPerSecond,
	}
}

// ToPlaylistFormat converts PlaylistFormat, falling back to M3U for
// unknown values.
func (s *Settings) ToPlaylistFormat() audio.PlaylistFormat {
	f, _ := audio.ParsePlaylistFormat(s.PlaylistFormat)
	return f
}

// ToTagConfig converts settings to an audio.TagConfig.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	cfg.ModifyTags = s.ModifyTags
	cfg.Artist = s.TagArtist
	return cfg
}

// ResolveCredentials returns the session tokens.
//
// Tokens set directly in the settings win. Any token still missing is taken
// from the cURL file, if one is configured. If either token is still empty
// the result is ErrMissingCredentials.
func (s *Settings) ResolveCredentials() (library.Credentials, error) {
	creds := library.Credentials{
		ElggPerm:  s.Credentials.ElggPerm,
		SessionID: s.Credentials.SessionID,
	}

	if !creds.Complete() && s.Credentials.CurlFile != "" {
		fromCurl, err := CredentialsFromCurlFile(s.Credentials.CurlFile)
		if err != nil {
			return library.Credentials{}, err
		}
		if creds.ElggPerm == "" {
			creds.ElggPerm = fromCurl.ElggPerm
		}
		if creds.SessionID == "" {
			creds.SessionID = fromCurl.SessionID
		}
	}

	if !creds.Complete() {
		return library.Credentials{}, ErrMissingCredentials
	}
	return creds, nil
}
