package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvElggPerm  = "LESSONDL_ELGGPERM"
	EnvSessionID = "LESSONDL_SESSION_ID"
	EnvOutput    = "LESSONDL_OUTPUT"
	EnvLogLevel  = "LESSONDL_LOG_LEVEL"
)

// LoadDotEnv loads variables from the given .env files (default ".env")
// into the process environment. Variables already set are not overridden,
// and a missing file is ignored.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overrides settings with any non-empty LESSONDL_* variables.
func (s *Settings) ApplyEnv() {
	if v := os.Getenv(EnvElggPerm); v != "" {
		s.Credentials.ElggPerm = v
	}
	if v := os.Getenv(EnvSessionID); v != "" {
		s.Credentials.SessionID = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		s.OutputPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
}
