package check

import (
	"context"
	"errors"
	"testing"

	"appwatch/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver maps app id → release or error.
type fakeResolver struct {
	releases map[string]*entity.AppRelease
}

func (f *fakeResolver) Resolve(ctx context.Context, appID string) (*entity.AppRelease, error) {
	if r, ok := f.releases[appID]; ok {
		return r, nil
	}
	return nil, entity.ErrNotFound
}

// fakeCache is an in-memory VersionCache recording saves.
type fakeCache struct {
	initial map[string]entity.CacheEntry
	saved   map[string]entity.CacheEntry
	saveErr error
	saves   int
}

func (f *fakeCache) Load() map[string]entity.CacheEntry {
	loaded := make(map[string]entity.CacheEntry, len(f.initial))
	for k, v := range f.initial {
		loaded[k] = v
	}
	return loaded
}

func (f *fakeCache) Save(cache map[string]entity.CacheEntry) error {
	f.saves++
	f.saved = cache
	return f.saveErr
}

// fakeDispatcher records dispatches and returns a configured result.
type fakeDispatcher struct {
	accepted bool
	method   string
	sent     []*entity.Notification
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, method string, n *entity.Notification) bool {
	f.method = method
	f.sent = append(f.sent, n)
	return f.accepted
}

func appRelease(id, name, version string) *entity.AppRelease {
	return &entity.AppRelease{AppID: id, Name: name, Version: version, Region: "us"}
}

func TestService_Run_ColdStart(t *testing.T) {
	resolver := &fakeResolver{releases: map[string]*entity.AppRelease{
		"A": appRelease("A", "Alpha", "1.2"),
		"B": appRelease("B", "Beta", "3.0"),
	}}
	cache := &fakeCache{}
	dispatcher := &fakeDispatcher{accepted: true}
	svc := NewService(resolver, cache, dispatcher, Config{AppIDs: []string{"A", "B"}, PushMethod: "bark"})

	stats, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.ColdStart)
	assert.Equal(t, 2, stats.Unseen)
	assert.True(t, stats.NotificationSent)
	assert.True(t, stats.Succeeded())

	// Exactly one notification listing both apps.
	require.Len(t, dispatcher.sent, 1)
	assert.Equal(t, "bark", dispatcher.method)
	assert.Contains(t, dispatcher.sent[0].Body, "Alpha")
	assert.Contains(t, dispatcher.sent[0].Body, "Beta")

	// Cache persisted with exactly the two resolved apps.
	require.Equal(t, 1, cache.saves)
	assert.Len(t, cache.saved, 2)
	assert.Equal(t, "1.2", cache.saved["A"].Version)
	assert.Equal(t, "3.0", cache.saved["B"].Version)
}

func TestService_Run_IncrementalSingleUpdate(t *testing.T) {
	resolver := &fakeResolver{releases: map[string]*entity.AppRelease{
		"A": appRelease("A", "Alpha", "1.1"),
		"B": appRelease("B", "Beta", "1.0"),
	}}
	cache := &fakeCache{initial: map[string]entity.CacheEntry{
		"A": {Version: "1.0", AppName: "Alpha"},
		"B": {Version: "1.0", AppName: "Beta"},
	}}
	dispatcher := &fakeDispatcher{accepted: true}
	svc := NewService(resolver, cache, dispatcher, Config{AppIDs: []string{"A", "B"}, PushMethod: "telegram"})

	stats, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, stats.ColdStart)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 1, stats.Unchanged)

	require.Len(t, dispatcher.sent, 1)
	assert.Equal(t, "Alpha updated", dispatcher.sent[0].Title)
	assert.NotContains(t, dispatcher.sent[0].Body, "Beta")

	require.Equal(t, 1, cache.saves)
	assert.Equal(t, "1.1", cache.saved["A"].Version)
	assert.Equal(t, "1.0", cache.saved["B"].Version)
}

func TestService_Run_NoChanges(t *testing.T) {
	resolver := &fakeResolver{releases: map[string]*entity.AppRelease{
		"A": appRelease("A", "Alpha", "1.0"),
	}}
	cache := &fakeCache{initial: map[string]entity.CacheEntry{
		"A": {Version: "1.0", AppName: "Alpha"},
	}}
	dispatcher := &fakeDispatcher{accepted: true}
	svc := NewService(resolver, cache, dispatcher, Config{AppIDs: []string{"A"}, PushMethod: "bark"})

	stats, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Unchanged)
	assert.False(t, stats.NotificationAttempted)
	assert.True(t, stats.Succeeded())
	assert.Empty(t, dispatcher.sent, "no notification on unchanged pass")
	assert.Zero(t, cache.saves, "no disk write on unchanged pass")
}

func TestService_Run_UnresolvableAppsAreSkipped(t *testing.T) {
	resolver := &fakeResolver{releases: map[string]*entity.AppRelease{
		"B": appRelease("B", "Beta", "2.0"),
	}}
	cache := &fakeCache{initial: map[string]entity.CacheEntry{
		"B": {Version: "1.9"},
	}}
	dispatcher := &fakeDispatcher{accepted: true}
	svc := NewService(resolver, cache, dispatcher, Config{AppIDs: []string{"A", "B"}, PushMethod: "bark"})

	stats, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.NotFound)
	assert.Equal(t, 1, stats.Updated)
	require.Len(t, dispatcher.sent, 1)
}

func TestService_Run_EmptyAppList(t *testing.T) {
	svc := NewService(&fakeResolver{}, &fakeCache{}, &fakeDispatcher{}, Config{PushMethod: "bark"})

	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoAppIDs)
}

func TestService_Run_DispatchFailureStillSavesCache(t *testing.T) {
	resolver := &fakeResolver{releases: map[string]*entity.AppRelease{
		"A": appRelease("A", "Alpha", "1.1"),
	}}
	cache := &fakeCache{initial: map[string]entity.CacheEntry{
		"A": {Version: "1.0"},
	}}
	dispatcher := &fakeDispatcher{accepted: false}
	svc := NewService(resolver, cache, dispatcher, Config{AppIDs: []string{"A"}, PushMethod: "telegram"})

	stats, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.NotificationAttempted)
	assert.False(t, stats.NotificationSent)
	assert.False(t, stats.Succeeded())
	assert.Equal(t, 1, cache.saves, "cache save proceeds even when dispatch fails")
}

func TestService_Run_SaveFailureIsNotFatal(t *testing.T) {
	resolver := &fakeResolver{releases: map[string]*entity.AppRelease{
		"A": appRelease("A", "Alpha", "1.1"),
	}}
	cache := &fakeCache{
		initial: map[string]entity.CacheEntry{"A": {Version: "1.0"}},
		saveErr: errors.New("disk full"),
	}
	dispatcher := &fakeDispatcher{accepted: true}
	svc := NewService(resolver, cache, dispatcher, Config{AppIDs: []string{"A"}, PushMethod: "bark"})

	stats, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.Succeeded())
}

func TestService_Run_ColdStartWithNothingResolvedIsNoOp(t *testing.T) {
	resolver := &fakeResolver{}
	cache := &fakeCache{}
	dispatcher := &fakeDispatcher{accepted: true}
	svc := NewService(resolver, cache, dispatcher, Config{AppIDs: []string{"A"}, PushMethod: "bark"})

	stats, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.ColdStart)
	assert.False(t, stats.NotificationAttempted)
	assert.Empty(t, dispatcher.sent)
	assert.Zero(t, cache.saves)
}
