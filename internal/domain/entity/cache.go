package entity

import "time"

// CacheEntry is the persisted last-observed state for one application.
// The cache as a whole is a mapping from application identifier to entry;
// an entry's Version always equals the version of the AppRelease that most
// recently caused a write for that identifier.
type CacheEntry struct {
	Version   string `json:"version"`
	AppName   string `json:"app_name"`
	Region    string `json:"region"`
	Icon      string `json:"icon,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

// NewCacheEntry builds the entry recorded when a release is first seen or
// its version changes. UpdatedAt is the local timestamp of the write.
func NewCacheEntry(r *AppRelease, now time.Time) CacheEntry {
	return CacheEntry{
		Version:   r.Version,
		AppName:   r.Name,
		Region:    r.Region,
		Icon:      r.IconURL,
		UpdatedAt: now.Format(time.RFC3339),
	}
}
