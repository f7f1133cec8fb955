// Package check implements the version-change detection pass: resolve every
// configured application, classify each against the persisted version cache,
// compose at most one consolidated notification, and persist the cache when
// anything changed.
package check

import (
	"time"

	"appwatch/internal/domain/entity"
)

// Classify diffs a freshly resolved release against the working cache map.
//
// The rule is a pure function of (fresh.Version, cache[appID].Version):
// absent old entry → Unseen; exact string equality → Unchanged (no semantic
// version parsing, "1.0" and "1.0.0" are different); anything else →
// Updated carrying the old version.
//
// Side effect: Unseen and Updated write a fresh CacheEntry into the working
// map so a later persistence step records the newly observed version;
// Unchanged mutates nothing. The map is not persisted here.
func Classify(appID string, fresh *entity.AppRelease, cache map[string]entity.CacheEntry, now time.Time) entity.Classification {
	old, ok := cache[appID]

	switch {
	case !ok:
		cache[appID] = entity.NewCacheEntry(fresh, now)
		return entity.Classification{Kind: entity.Unseen, Release: fresh}

	case old.Version == fresh.Version:
		return entity.Classification{Kind: entity.Unchanged, Release: fresh}

	default:
		cache[appID] = entity.NewCacheEntry(fresh, now)
		return entity.Classification{
			Kind:       entity.Updated,
			Release:    fresh,
			OldVersion: old.Version,
		}
	}
}
