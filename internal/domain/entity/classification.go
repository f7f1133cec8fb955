package entity

// ClassificationKind identifies how a freshly resolved release relates to
// the cached state for the same application identifier.
type ClassificationKind int

const (
	// Unseen means the cache held no prior entry for the identifier.
	Unseen ClassificationKind = iota
	// Unchanged means the cached version string is identical to the fresh one.
	Unchanged
	// Updated means a prior entry exists with a different version string.
	Updated
)

// String returns the lowercase name of the kind, used as the metrics label
// for classification outcomes.
func (k ClassificationKind) String() string {
	switch k {
	case Unseen:
		return "unseen"
	case Unchanged:
		return "unchanged"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

// Classification is the run-scoped result of diffing one resolved release
// against the version cache. It is never persisted.
type Classification struct {
	Kind    ClassificationKind
	Release *AppRelease
	// OldVersion is the previously cached version string.
	// It is only meaningful when Kind is Updated.
	OldVersion string
}
