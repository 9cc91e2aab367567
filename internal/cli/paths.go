package cli

import (
	"os"
	"path/filepath"

	"github.com/mcxross/sui/pkg/config"
)

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/move-tree/).
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
