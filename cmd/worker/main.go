package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/crewpay/backend-crewpay/internal/cache"
	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
	"github.com/crewpay/backend-crewpay/internal/config"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/events"
	"github.com/crewpay/backend-crewpay/internal/extraction"
	"github.com/crewpay/backend-crewpay/internal/lock"
	"github.com/crewpay/backend-crewpay/internal/notify"
	"github.com/crewpay/backend-crewpay/internal/obs"
	"github.com/crewpay/backend-crewpay/internal/payout"
	"github.com/crewpay/backend-crewpay/internal/resilience"
	"github.com/crewpay/backend-crewpay/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("component", "worker").Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "crewpay")
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, queries := mustInitDatabase(ctx, cfg, logger)
	defer pool.Close()

	redisClient, redisOpts := mustInitRedis(ctx, cfg, logger)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()

	taskClient := tasks.NewClient(redisOpts.Addr, redisOpts.Password, redisOpts.DB)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close task client")
		}
	}()

	bus := &events.Bus{Store: queries, Scheduler: taskClient}
	settings := &company.SettingsCache{
		Q:     queries,
		Cache: cache.NewJSON(redisClient, 5*time.Minute),
	}

	importSvc := &extraction.Service{
		Q:         queries,
		Extractor: newExtractor(cfg, logger),
		Events:    bus,
		Scheduler: taskClient,
		MaxBytes:  cfg.ImportMaxBytes,
	}

	payoutSvc := &payout.Service{
		Q:        queries,
		Provider: newPayoutProvider(cfg, logger),
		Events:   bus,
		Locker:   lock.Locker{R: redisClient, RetryBackoff: 100 * time.Millisecond},
		Settings: settings,
	}

	emailNotifier := notify.EmailNotifier{
		Mail:    common.NopEmailSender{},
		Enabled: cfg.EmailEnabled,
		From:    cfg.EmailFrom,
	}

	handlers := &tasks.Handlers{
		Imports:   importSvc,
		Payouts:   payoutSvc,
		Q:         queries,
		Notifiers: []events.Notifier{emailNotifier},
		Logger:    logger,
	}

	srv := tasks.NewServer(redisOpts.Addr, redisOpts.Password, redisOpts.DB, cfg.WorkerConcurrency, logger)

	go func() {
		<-ctx.Done()
		logger.Info().Msg("worker shutting down")
		srv.Shutdown()
	}()

	logger.Info().Int("concurrency", cfg.WorkerConcurrency).Msg("worker starting")
	if err := srv.Run(handlers.NewMux()); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped with error")
	}
	logger.Info().Msg("worker shutdown complete")
}

func newExtractor(cfg *config.Config, logger zerolog.Logger) extraction.Extractor {
	if strings.TrimSpace(cfg.ExtractorURL) == "" {
		logger.Warn().Msg("EXTRACTOR_URL not set, using static extractor")
		return &extraction.StaticExtractor{}
	}
	return &extraction.HTTPExtractor{
		BaseURL: strings.TrimRight(cfg.ExtractorURL, "/"),
		APIKey:  cfg.ExtractorAPIKey,
		Client: resilience.HTTPClient{
			Client:      &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
			Breaker:     resilience.NewBreaker(5, 0.5, 30*time.Second).WithTarget("extractor").WithLogger(logger),
			BaseBackoff: 200 * time.Millisecond,
			MaxAttempts: 3,
			Jitter:      0.2,
			Timeout:     cfg.ExtractorTimeout,
		},
	}
}

func newPayoutProvider(cfg *config.Config, logger zerolog.Logger) payout.Provider {
	if cfg.PayoutProvider != "http" || strings.TrimSpace(cfg.PayoutURL) == "" {
		return payout.StubProvider{}
	}
	return &payout.HTTPProvider{
		BaseURL: strings.TrimRight(cfg.PayoutURL, "/"),
		APIKey:  cfg.PayoutAPIKey,
		Client: resilience.HTTPClient{
			Client:      &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
			Breaker:     resilience.NewBreaker(5, 0.5, time.Minute).WithTarget("payout").WithLogger(logger),
			BaseBackoff: 500 * time.Millisecond,
			MaxAttempts: 3,
			Jitter:      0.2,
			Timeout:     30 * time.Second,
		},
	}
}

func mustInitDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, *dbgen.Queries) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "crewpay-worker"
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}
	return pool, dbgen.New(pool)
}

func mustInitRedis(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*redis.Client, *redis.Options) {
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}
	return redisClient, redisOpts
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
