package config

import "errors"

var (
	// ErrMissingCredentials is returned when either session token is empty
	// after all sources (settings, environment, cURL file) were consulted.
	ErrMissingCredentials = errors.New("missing session credentials: set elggperm and session_id")

	// ErrNoCookies is returned when a cURL command carries no cookie header.
	ErrNoCookies = errors.New("no cookies found in curl command")

	// ErrConfigExists is returned by CreateFile when the target already exists.
	ErrConfigExists = errors.New("config file already exists")
)
