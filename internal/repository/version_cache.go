// Package repository defines persistence interfaces consumed by the use case
// layer. Concrete implementations live under internal/infra.
package repository

import "appwatch/internal/domain/entity"

// VersionCache persists the mapping from application identifier to the
// last-observed release state across runs.
//
// Load never fails: a missing or structurally corrupt backing store yields
// an empty mapping, which is the cold-start signal for the orchestrator.
// Save performs a full atomic replace of the backing store.
type VersionCache interface {
	Load() map[string]entity.CacheEntry
	Save(cache map[string]entity.CacheEntry) error
}
