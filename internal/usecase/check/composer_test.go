package check

import (
	"fmt"
	"strings"
	"testing"

	"appwatch/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unseen(name, version, region string) entity.Classification {
	return entity.Classification{
		Kind: entity.Unseen,
		Release: &entity.AppRelease{
			Name:    name,
			Version: version,
			Region:  region,
		},
	}
}

func updated(name, oldV, newV, notes string) entity.Classification {
	return entity.Classification{
		Kind:       entity.Updated,
		OldVersion: oldV,
		Release: &entity.AppRelease{
			Name:         name,
			Version:      newV,
			Region:       "us",
			ReleaseNotes: notes,
			StoreURL:     fmt.Sprintf("https://apps.example.com/%s", name),
			IconURL:      fmt.Sprintf("https://img.example.com/%s.png", name),
			ReleasedAt:   "2026-08-20T09:00:00Z",
		},
	}
}

func TestCompose_ColdStart(t *testing.T) {
	t.Run("lists all newly tracked apps in order", func(t *testing.T) {
		n := Compose([]entity.Classification{
			unseen("Alpha", "1.2", "us"),
			unseen("Beta", "3.0", "jp"),
		}, true)

		require.NotNil(t, n)
		assert.Equal(t, "Now tracking 2 apps", n.Title)
		lines := strings.Split(n.Body, "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "Alpha v1.2 (United States)", lines[0])
		assert.Equal(t, "Beta v3.0 (Japan)", lines[1])
	})

	t.Run("singular title for one app", func(t *testing.T) {
		n := Compose([]entity.Classification{unseen("Alpha", "1.2", "us")}, true)

		require.NotNil(t, n)
		assert.Equal(t, "Now tracking 1 app", n.Title)
	})

	t.Run("nil when nothing is unseen", func(t *testing.T) {
		n := Compose([]entity.Classification{updated("Alpha", "1.0", "1.1", "")}, true)
		assert.Nil(t, n)
	})
}

func TestCompose_SingleUpdate(t *testing.T) {
	t.Run("shows old to new version, region and release time", func(t *testing.T) {
		n := Compose([]entity.Classification{updated("Alpha", "1.0", "1.1", "Fixed crashes")}, false)

		require.NotNil(t, n)
		assert.Equal(t, "Alpha updated", n.Title)
		assert.Contains(t, n.Body, "1.0 → 1.1")
		assert.Contains(t, n.Body, "United States")
		assert.Contains(t, n.Body, "2026-08-20T09:00:00Z")
		assert.Contains(t, n.Body, "Fixed crashes")
	})

	t.Run("notes at the limit are verbatim", func(t *testing.T) {
		notes := strings.Repeat("a", singleNotesLimit)
		n := Compose([]entity.Classification{updated("Alpha", "1.0", "1.1", notes)}, false)

		require.NotNil(t, n)
		assert.Contains(t, n.Body, notes)
		assert.NotContains(t, n.Body, notes+truncationSuffix)
	})

	t.Run("notes over the limit are truncated with ellipsis", func(t *testing.T) {
		notes := strings.Repeat("a", singleNotesLimit+50)
		n := Compose([]entity.Classification{updated("Alpha", "1.0", "1.1", notes)}, false)

		require.NotNil(t, n)
		assert.Contains(t, n.Body, strings.Repeat("a", singleNotesLimit)+truncationSuffix)
		assert.NotContains(t, n.Body, notes)
	})

	t.Run("unchanged results do not qualify", func(t *testing.T) {
		n := Compose([]entity.Classification{
			{Kind: entity.Unchanged, Release: &entity.AppRelease{Name: "Alpha", Version: "1.0"}},
		}, false)
		assert.Nil(t, n)
	})
}

func TestCompose_MultiUpdate(t *testing.T) {
	n := Compose([]entity.Classification{
		updated("Alpha", "1.0", "1.1", "short notes"),
		updated("Beta", "2.0", "2.1", strings.Repeat("b", multiNotesLimit+10)),
	}, false)

	require.NotNil(t, n)
	assert.Equal(t, "2 apps updated", n.Title)

	lines := strings.Split(n.Body, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1. Alpha v1.1 (United States)"), "got %q", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2. Beta v2.1"), "got %q", lines[1])
	assert.Contains(t, lines[1], strings.Repeat("b", multiNotesLimit)+truncationSuffix)
}

func TestCompose_LinkAndIconFromFirstResult(t *testing.T) {
	n := Compose([]entity.Classification{
		updated("Alpha", "1.0", "1.1", ""),
		updated("Beta", "2.0", "2.1", ""),
	}, false)

	require.NotNil(t, n)
	assert.Equal(t, "https://apps.example.com/Alpha", n.URL)
	assert.Equal(t, "https://img.example.com/Alpha.png", n.Icon)
}

func TestTruncateNotes_RuneSafe(t *testing.T) {
	notes := strings.Repeat("更", 10)
	got := truncateNotes(notes, 4)
	assert.Equal(t, "更更更更"+truncationSuffix, got)
}
