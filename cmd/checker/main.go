package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	appconfig "appwatch/internal/config"
	"appwatch/internal/infra/cache"
	"appwatch/internal/infra/notifier"
	"appwatch/internal/infra/storefront"
	workerPkg "appwatch/internal/infra/worker"
	"appwatch/internal/observability/logging"
	"appwatch/internal/observability/metrics"
	"appwatch/internal/usecase/check"
	"appwatch/internal/usecase/notify"
	pkgconfig "appwatch/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	checkerConfig := appconfig.LoadCheckerConfig(logger)
	logger.Info("checker configuration loaded",
		slog.Int("apps", len(checkerConfig.AppIDs)),
		slog.String("push_method", checkerConfig.PushMethod),
		slog.String("cache_path", checkerConfig.CachePath))

	svc := setupCheckService(logger, checkerConfig)

	workerConfig := workerPkg.LoadConfigFromEnv(logger)
	if !workerConfig.Enabled() {
		stats, err := runCheckPass(ctx, logger, svc, checkerConfig.PushMethod)
		if err != nil || !stats.Succeeded() {
			os.Exit(1)
		}
		return
	}

	logger.Info("scheduled mode enabled",
		slog.String("schedule", workerConfig.Schedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("pass_timeout", workerConfig.PassTimeout))

	startMetricsServer(ctx, logger, workerConfig.MetricsPort)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	startCronWorker(ctx, logger, svc, checkerConfig.PushMethod, workerConfig, healthServer)
}

// setupCheckService wires the storefront resolver, the version cache and the
// notification dispatcher into a check service.
func setupCheckService(logger *slog.Logger, cfg appconfig.CheckerConfig) *check.Service {
	storefrontConfig := loadStorefrontConfig()
	client := storefront.NewClient(storefrontConfig)

	regions := pkgconfig.GetEnvStringList("REGIONS", nil)
	regionLimit := pkgconfig.GetEnvInt("REGION_LIMIT", 0)
	resolver := storefront.NewResolver(client, regions, regionLimit)

	store := cache.NewFileStore(cfg.CachePath)

	bark := notifier.NewBarkNotifier(loadBarkConfig())
	telegram := notifier.NewTelegramNotifier(loadTelegramConfig())
	dispatcher := notify.NewDispatcher(bark, telegram, notifier.NewNoOpNotifier())
	logger.Info("notification backends initialized",
		slog.Bool("bark", bark.IsEnabled()),
		slog.Bool("telegram", telegram.IsEnabled()))

	return check.NewService(resolver, store, dispatcher, check.Config{
		AppIDs:     cfg.AppIDs,
		PushMethod: cfg.PushMethod,
	})
}

// loadStorefrontConfig builds the lookup client configuration from the
// environment, starting from production defaults.
func loadStorefrontConfig() storefront.Config {
	cfg := storefront.DefaultConfig()
	cfg.LookupURL = pkgconfig.GetEnvString("LOOKUP_API_URL", cfg.LookupURL)
	cfg.Timeout = pkgconfig.GetEnvDuration("LOOKUP_TIMEOUT", cfg.Timeout)
	return cfg
}

// loadBarkConfig loads the Bark backend configuration.
//
// Environment variables:
//   - BARK_KEY: per-device key; empty leaves the backend disabled
//   - BARK_API_URL: Bark server base URL (default: https://api.day.app)
func loadBarkConfig() notifier.BarkConfig {
	return notifier.BarkConfig{
		DeviceKey: pkgconfig.GetEnvString("BARK_KEY", ""),
		APIURL:    pkgconfig.GetEnvString("BARK_API_URL", "https://api.day.app"),
		Timeout:   pkgconfig.GetEnvDuration("BARK_TIMEOUT", 15*time.Second),
	}
}

// loadTelegramConfig loads the Telegram backend configuration.
//
// Environment variables:
//   - TELEGRAM_BOT_TOKEN: bot token; empty leaves the backend disabled
//   - TELEGRAM_CHAT_ID: destination chat; empty leaves the backend disabled
//   - TELEGRAM_API_URL: Bot API base (default: https://api.telegram.org/bot)
func loadTelegramConfig() notifier.TelegramConfig {
	return notifier.TelegramConfig{
		BotToken: pkgconfig.GetEnvString("TELEGRAM_BOT_TOKEN", ""),
		ChatID:   pkgconfig.GetEnvString("TELEGRAM_CHAT_ID", ""),
		APIURL:   pkgconfig.GetEnvString("TELEGRAM_API_URL", "https://api.telegram.org/bot"),
		Timeout:  pkgconfig.GetEnvDuration("TELEGRAM_TIMEOUT", 15*time.Second),
	}
}

// startCronWorker starts the cron scheduler and runs the check pass
// periodically until the context is cancelled.
func startCronWorker(ctx context.Context, logger *slog.Logger, svc *check.Service, pushMethod string, cfg workerPkg.Config, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.Schedule, func() {
		passCtx, cancel := context.WithTimeout(ctx, cfg.PassTimeout)
		defer cancel()

		stats, err := runCheckPass(passCtx, logger, svc, pushMethod)
		if err != nil {
			metrics.RecordCheckPassFailure()
			return
		}
		metrics.RecordCheckPass(stats)
		if stats.NotificationAttempted {
			metrics.RecordNotification(pushMethod, stats.NotificationSent)
		}
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("checker started",
		slog.String("schedule", cfg.Schedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutdown requested, stopping scheduler")
	<-c.Stop().Done()
}

// runCheckPass executes one check pass. Per-pass progress and the final
// stats line are logged by the service itself.
func runCheckPass(ctx context.Context, logger *slog.Logger, svc *check.Service, pushMethod string) (*check.Stats, error) {
	stats, err := svc.Run(ctx)
	if err != nil {
		logger.Error("check pass failed",
			slog.String("push_method", pushMethod),
			slog.Any("error", err))
		return nil, err
	}
	return stats, nil
}
