// Package config provides configuration management for lessondl.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values
//   - Environment overrides, including a .env file
//   - Importing session cookies from a browser "Copy as cURL" dump
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Precedence
//
// Command-line flags override environment variables, which override the
// settings file, which overrides DefaultSettings:
//
//	config.LoadDotEnv()
//	settings, _ := config.Load(path)
//	settings.ApplyEnv()
//	// apply flags here
//	creds, err := settings.ResolveCredentials()
//
// # Credentials
//
// The library authenticates with two cookies, elggperm and
// ASP.NET_SessionId. They can be given directly:
//
//	[credentials]
//	elggperm = "..."
//	session_id = "..."
//
// or read from a saved cURL command copied from the browser's network tab:
//
//	[credentials]
//	curl_file = "/home/me/lesson.curl"
package config
