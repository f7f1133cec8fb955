package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"appwatch/internal/domain/entity"
	"appwatch/internal/repository"
)

// Resolver is the region-fallback resolution capability consumed by the
// service. *storefront.Resolver implements it; tests substitute fakes.
type Resolver interface {
	Resolve(ctx context.Context, appID string) (*entity.AppRelease, error)
}

// Dispatcher routes a composed notification to the configured backend and
// reports whether the transport accepted it.
type Dispatcher interface {
	Dispatch(ctx context.Context, method string, n *entity.Notification) bool
}

// Config holds the orchestrator-level settings for one pass.
type Config struct {
	// AppIDs is the ordered list of application identifiers to check
	AppIDs []string

	// PushMethod selects the delivery backend ("bark", "telegram" or "none")
	PushMethod string
}

// Service drives one check pass over all configured applications.
// Identifiers are processed sequentially in configured order; there is no
// concurrency across checks and no cross-run locking (the invoking scheduler
// guarantees a single instance).
type Service struct {
	resolver   Resolver
	cache      repository.VersionCache
	dispatcher Dispatcher
	config     Config
	now        func() time.Time
}

// NewService creates a check Service with the provided collaborators.
func NewService(resolver Resolver, cache repository.VersionCache, dispatcher Dispatcher, config Config) *Service {
	return &Service{
		resolver:   resolver,
		cache:      cache,
		dispatcher: dispatcher,
		config:     config,
		now:        time.Now,
	}
}

// Stats summarizes one pass.
type Stats struct {
	Apps      int
	Resolved  int
	NotFound  int
	Unseen    int
	Unchanged int
	Updated   int
	ColdStart bool

	// NotificationAttempted is true when the pass composed a notification;
	// NotificationSent is true when the backend accepted it.
	NotificationAttempted bool
	NotificationSent      bool

	Duration time.Duration
}

// Succeeded reports the overall run status: a pass fails only when a
// notification was attempted and the backend did not accept it.
func (s *Stats) Succeeded() bool {
	return !s.NotificationAttempted || s.NotificationSent
}

// Run performs one full pass: resolve, classify, compose and dispatch at
// most one notification, persist the cache only if anything changed.
//
// A run is cold-start when the cache mapping was empty at load time; in that
// case all resolved identifiers classify Unseen by construction and the full
// resolved set is announced. Otherwise only the Updated subset is reported.
// The cache is saved if and only if a notification branch was taken, and a
// save failure is logged, never fatal: the classification and notification
// already happened and are more valuable than the persistence step.
func (s *Service) Run(ctx context.Context) (*Stats, error) {
	start := s.now()
	stats := &Stats{Apps: len(s.config.AppIDs)}

	if len(s.config.AppIDs) == 0 {
		return stats, ErrNoAppIDs
	}

	working := s.cache.Load()
	stats.ColdStart = len(working) == 0

	slog.Info("check pass started",
		slog.Int("apps", stats.Apps),
		slog.String("push_method", s.config.PushMethod),
		slog.Bool("cold_start", stats.ColdStart))

	results := make([]entity.Classification, 0, stats.Apps)
	for _, appID := range s.config.AppIDs {
		release, err := s.resolver.Resolve(ctx, appID)
		if err != nil {
			if ctx.Err() != nil {
				return stats, fmt.Errorf("check pass interrupted: %w", ctx.Err())
			}
			if errors.Is(err, entity.ErrNotFound) || errors.Is(err, entity.ErrInvalidInput) {
				stats.NotFound++
				slog.Warn("app unresolvable, skipping",
					slog.String("app_id", appID),
					slog.Any("error", err))
				continue
			}
			return stats, fmt.Errorf("resolve %s: %w", appID, err)
		}
		stats.Resolved++

		result := Classify(appID, release, working, s.now())
		results = append(results, result)
		s.recordClassification(stats, appID, result)
	}

	var notification *entity.Notification
	if stats.ColdStart {
		if stats.Resolved > 0 {
			notification = Compose(results, true)
		}
	} else if stats.Updated > 0 {
		notification = Compose(results, false)
	}

	if notification != nil {
		stats.NotificationAttempted = true
		stats.NotificationSent = s.dispatcher.Dispatch(ctx, s.config.PushMethod, notification)

		// Persist only alongside an attempted notification; an unchanged-only
		// pass performs no disk write.
		if err := s.cache.Save(working); err != nil {
			slog.Error("version cache save failed",
				slog.Any("error", err))
		}
	} else {
		slog.Info("no changes detected, nothing to notify")
	}

	stats.Duration = time.Since(start)
	slog.Info("check pass finished",
		slog.Int("resolved", stats.Resolved),
		slog.Int("not_found", stats.NotFound),
		slog.Int("unseen", stats.Unseen),
		slog.Int("unchanged", stats.Unchanged),
		slog.Int("updated", stats.Updated),
		slog.Bool("notified", stats.NotificationSent),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}

func (s *Service) recordClassification(stats *Stats, appID string, result entity.Classification) {
	switch result.Kind {
	case entity.Unseen:
		stats.Unseen++
		slog.Info("app seen for the first time",
			slog.String("app_id", appID),
			slog.String("name", result.Release.Name),
			slog.String("version", result.Release.Version))
	case entity.Updated:
		stats.Updated++
		slog.Info("update detected",
			slog.String("app_id", appID),
			slog.String("name", result.Release.Name),
			slog.String("old_version", result.OldVersion),
			slog.String("new_version", result.Release.Version))
	case entity.Unchanged:
		stats.Unchanged++
		slog.Debug("no update",
			slog.String("app_id", appID),
			slog.String("version", result.Release.Version))
	}
}
