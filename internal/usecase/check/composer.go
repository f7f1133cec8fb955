package check

import (
	"fmt"
	"strings"

	"appwatch/internal/domain/entity"
	"appwatch/internal/infra/storefront"
)

const (
	// singleNotesLimit bounds the release-notes excerpt when exactly one app
	// updated; multiNotesLimit applies per entry in the numbered list.
	singleNotesLimit = 200
	multiNotesLimit  = 80

	truncationSuffix = "..."
)

// truncateNotes trims release notes to maxLen runes, appending the suffix
// when anything was cut. Notes at or under the limit are returned verbatim.
// Rune-based so CJK release notes are not split mid-character.
func truncateNotes(notes string, maxLen int) string {
	runes := []rune(notes)
	if len(runes) <= maxLen {
		return notes
	}
	return string(runes[:maxLen]) + truncationSuffix
}

// Compose builds the single consolidated notification for one pass, or nil
// when nothing qualifies.
//
// On a cold-start run the Unseen results are announced as newly tracked; on
// an incremental run only the Updated subset is reported, with a dedicated
// layout for the single-update case. The notification's link and icon are
// taken from the first qualifying result in iteration order, since most
// backends accept one link and icon per message.
func Compose(results []entity.Classification, coldStart bool) *entity.Notification {
	wanted := entity.Updated
	if coldStart {
		wanted = entity.Unseen
	}

	var qualifying []entity.Classification
	for _, r := range results {
		if r.Kind == wanted {
			qualifying = append(qualifying, r)
		}
	}
	if len(qualifying) == 0 {
		return nil
	}

	var n *entity.Notification
	switch {
	case coldStart:
		n = composeColdStart(qualifying)
	case len(qualifying) == 1:
		n = composeSingleUpdate(qualifying[0])
	default:
		n = composeMultiUpdate(qualifying)
	}

	first := qualifying[0].Release
	n.URL = first.StoreURL
	n.Icon = first.IconURL
	return n
}

// composeColdStart lists every newly tracked application, one line each, in
// resolution order.
func composeColdStart(results []entity.Classification) *entity.Notification {
	var body strings.Builder
	for i, r := range results {
		if i > 0 {
			body.WriteString("\n")
		}
		rel := r.Release
		fmt.Fprintf(&body, "%s v%s (%s)", rel.Name, rel.Version, storefront.RegionName(rel.Region))
	}

	noun := "apps"
	if len(results) == 1 {
		noun = "app"
	}
	return &entity.Notification{
		Title: fmt.Sprintf("Now tracking %d %s", len(results), noun),
		Body:  body.String(),
	}
}

// composeSingleUpdate highlights the one updated application with the
// version transition and a longer notes excerpt.
func composeSingleUpdate(r entity.Classification) *entity.Notification {
	rel := r.Release

	var body strings.Builder
	fmt.Fprintf(&body, "Version: %s → %s\nRegion: %s", r.OldVersion, rel.Version, storefront.RegionName(rel.Region))
	if rel.ReleasedAt != "" {
		fmt.Fprintf(&body, "\nReleased: %s", rel.ReleasedAt)
	}
	if rel.ReleaseNotes != "" {
		fmt.Fprintf(&body, "\n\n%s", truncateNotes(rel.ReleaseNotes, singleNotesLimit))
	}

	return &entity.Notification{
		Title: fmt.Sprintf("%s updated", rel.Name),
		Body:  body.String(),
	}
}

// composeMultiUpdate renders a numbered list, one entry per updated
// application, with a shorter per-entry notes excerpt.
func composeMultiUpdate(results []entity.Classification) *entity.Notification {
	var body strings.Builder
	for i, r := range results {
		if i > 0 {
			body.WriteString("\n")
		}
		rel := r.Release
		fmt.Fprintf(&body, "%d. %s v%s (%s)", i+1, rel.Name, rel.Version, storefront.RegionName(rel.Region))
		if rel.ReleaseNotes != "" {
			fmt.Fprintf(&body, " — %s", truncateNotes(rel.ReleaseNotes, multiNotesLimit))
		}
	}

	return &entity.Notification{
		Title: fmt.Sprintf("%d apps updated", len(results)),
		Body:  body.String(),
	}
}
