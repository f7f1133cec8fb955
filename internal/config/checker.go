// Package config builds the immutable top-level configuration for a check
// run. Everything is read once at startup and passed explicitly into the
// components that need it; nothing reads the environment after Load returns.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	pkgconfig "appwatch/pkg/config"

	"gopkg.in/yaml.v3"
)

// DefaultAppID is the built-in test identifier used when no applications are
// configured. It keeps a misconfigured deployment observable instead of
// silently doing nothing.
const DefaultAppID = "284882215"

// CheckerConfig holds the orchestrator-level settings for one run.
type CheckerConfig struct {
	// PushMethod selects the delivery backend: "bark" (default), "telegram",
	// or "none" to run the pass without sending anything
	PushMethod string

	// AppIDs is the ordered list of application identifiers to check
	AppIDs []string

	// CachePath is the location of the persisted version cache file
	CachePath string
}

// watchlist is the YAML shape of an optional watchlist file:
//
//	apps:
//	  - "284882215"
//	  - "310633997"
type watchlist struct {
	Apps []string `yaml:"apps"`
}

// LoadCheckerConfig reads the checker configuration from the environment.
//
// Application identifiers come from APP_IDS (comma-separated) or, when that
// is unset, from the YAML file named by WATCHLIST_FILE. If neither yields
// any identifiers the built-in test identifier is used and a warning is
// logged.
func LoadCheckerConfig(logger *slog.Logger) CheckerConfig {
	appIDs := pkgconfig.GetEnvStringList("APP_IDS", nil)

	if len(appIDs) == 0 {
		if path := os.Getenv("WATCHLIST_FILE"); path != "" {
			ids, err := loadWatchlist(path)
			if err != nil {
				logger.Warn("watchlist file unreadable, ignoring",
					slog.String("path", path),
					slog.Any("error", err))
			} else {
				appIDs = ids
			}
		}
	}

	if len(appIDs) == 0 {
		logger.Warn("no app ids configured, falling back to built-in test identifier",
			slog.String("app_id", DefaultAppID))
		appIDs = []string{DefaultAppID}
	}

	return CheckerConfig{
		PushMethod: strings.ToLower(pkgconfig.GetEnvString("PUSH_METHOD", "bark")),
		AppIDs:     appIDs,
		CachePath:  pkgconfig.GetEnvString("CACHE_PATH", "version_cache.json"),
	}
}

// loadWatchlist parses a YAML watchlist file, filtering out empty entries.
func loadWatchlist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}

	var wl watchlist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parse watchlist: %w", err)
	}

	ids := make([]string, 0, len(wl.Apps))
	for _, id := range wl.Apps {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids, nil
}
