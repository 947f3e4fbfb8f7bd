// Package config resolves file locations for the mutasi application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// defaultDatabasePath is where the mutation database lives when the config
// file and MUTASI_DATABASE_PATH leave it unset.
const defaultDatabasePath = "$HOME/.local/share/mutasi/mutasi.db"

// DatabasePath resolves the configured database location, falling back to
// the default under $HOME/.local/share when blank. The result has ~ and
// environment variables expanded.
func DatabasePath(configured string) string {
	if strings.TrimSpace(configured) == "" {
		configured = defaultDatabasePath
	}
	return ExpandPath(configured)
}

// ExpandPath expands a leading ~ and any $VAR environment references in a
// file path.
func ExpandPath(path string) string {
	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
