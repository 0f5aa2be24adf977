// Package config loads sentencematch's CLI defaults from the environment,
// the same way the teacher pack's gateway and telegram bot load theirs:
// a best-effort .env load followed by plain os.Getenv reads.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Defaults holds environment-sourced fallbacks for the CLI flags.
type Defaults struct {
	IntentsPath string
	Language    string
}

// Load reads a .env file if present (silently ignored if it's not) and
// returns the SENTENCEMATCH_* defaults found in the environment.
func Load() Defaults {
	_ = godotenv.Load()

	return Defaults{
		IntentsPath: os.Getenv("SENTENCEMATCH_INTENTS"),
		Language:    valueOrDefault(os.Getenv("SENTENCEMATCH_LANG"), "en"),
	}
}

func valueOrDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
