// Package entity defines the core domain entities for the app update checker.
// It contains the fundamental business objects such as AppRelease and CacheEntry,
// along with their validation rules and domain-specific errors.
package entity

// AppRelease represents the currently published state of an application
// as resolved from the storefront lookup API. It is transient: one release
// exists per configured identifier per run, and it is discarded after
// classification and notification composition.
type AppRelease struct {
	AppID        string
	Name         string
	Version      string // opaque; compared only for exact string equality
	ReleaseNotes string
	StoreURL     string
	IconURL      string
	ReleasedAt   string // ISO-8601 as returned by the storefront, may be empty
	Region       string // region code that satisfied the lookup
}

// Validate checks the release for the fields the rest of the pipeline relies on.
func (r *AppRelease) Validate() error {
	if r.AppID == "" {
		return &ValidationError{Field: "AppID", Message: "must not be empty"}
	}
	if r.Version == "" {
		return &ValidationError{Field: "Version", Message: "must not be empty"}
	}
	return nil
}
