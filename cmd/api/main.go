package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	limitstdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"

	"github.com/crewpay/backend-crewpay/internal/analytics"
	"github.com/crewpay/backend-crewpay/internal/app"
	"github.com/crewpay/backend-crewpay/internal/audit"
	"github.com/crewpay/backend-crewpay/internal/auth"
	"github.com/crewpay/backend-crewpay/internal/cache"
	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
	"github.com/crewpay/backend-crewpay/internal/config"
	"github.com/crewpay/backend-crewpay/internal/contractor"
	"github.com/crewpay/backend-crewpay/internal/db"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/equity"
	"github.com/crewpay/backend-crewpay/internal/events"
	"github.com/crewpay/backend-crewpay/internal/extraction"
	"github.com/crewpay/backend-crewpay/internal/health"
	httpmw "github.com/crewpay/backend-crewpay/internal/http/middleware"
	"github.com/crewpay/backend-crewpay/internal/invoice"
	"github.com/crewpay/backend-crewpay/internal/obs"
	"github.com/crewpay/backend-crewpay/internal/ratelimit"
	"github.com/crewpay/backend-crewpay/internal/security"
	"github.com/crewpay/backend-crewpay/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "crewpay")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		sampling := envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0)
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "crewpay-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: sampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				ctx := context.Background()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cfg.AutoMigrate {
		migrator, err := db.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("build migrator")
		}
		if err := app.RunMigrations(migrator); err != nil {
			logger.Fatal().Err(err).Msg("run migrations")
		}
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "crewpay-api"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	queries := dbgen.New(pool)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if metricsEnabled {
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	taskClient := tasks.NewClient(redisOpts.Addr, redisOpts.Password, redisOpts.DB)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close task client")
		}
	}()

	verifier, err := auth.NewVerifier(auth.VerifierConfig{
		Secret:    cfg.AuthJWTSecret,
		Issuer:    cfg.AuthIssuer,
		Audience:  cfg.AuthAudience,
		ClockSkew: cfg.AuthClockSkew,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise token verifier")
	}
	identities := &auth.IdentityResolver{
		Q:     queries,
		Cache: cache.NewJSON(redisClient, 5*time.Minute),
	}
	authMiddleware := auth.Middleware{Verifier: verifier, Identities: identities}

	companyResolver := company.NewResolver(cfg.CompanyHeader, cfg.RootDomain, cfg.DefaultCompany)
	settings := &company.SettingsCache{
		Q:     queries,
		Cache: cache.NewJSON(redisClient, 5*time.Minute),
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}

	bus := &events.Bus{Store: queries, Scheduler: taskClient}

	equitySvc := &equity.Service{Q: queries}
	invoiceSvc := &invoice.Service{
		Q:        queries,
		Pool:     pool,
		Settings: settings,
		Equity:   equitySvc,
		Events:   bus,
		Payouts:  taskClient,
	}
	invoiceHandler := &invoice.Handler{Service: invoiceSvc, Validate: validate}
	invoiceAdmin := &invoice.AdminHandler{Service: invoiceSvc, Validate: validate}

	contractorHandler := &contractor.Handler{Q: queries, Validate: validate}
	equityHandler := &equity.Handler{Q: queries, Validate: validate, Events: bus}
	companyHandler := &company.Handler{Q: queries, Pool: pool, Settings: settings, Validate: validate}

	importSvc := &extraction.Service{
		Q:         queries,
		Events:    bus,
		Scheduler: taskClient,
		MaxBytes:  cfg.ImportMaxBytes,
	}
	importHandler := &extraction.Handler{Service: importSvc}

	auditSvc := audit.Service{Store: queries, Enabled: true, SamplingRate: cfg.AuditSampleRate}
	auditRecorder := audit.HTTPRecorder{
		Service: &auditSvc,
		OnError: func(err error) { logger.Error().Err(err).Msg("record audit entry") },
	}
	auditHandler := audit.Handler{Store: queries}

	analyticsSvc := &analytics.Service{Q: queries, R: redisClient, TTL: cfg.AnalyticsCacheTTL, DefaultRange: cfg.AnalyticsDefaultRange}
	analyticsHandler := &analytics.Handler{Svc: analyticsSvc}

	importLimiter, err := app.NewRateLimiter(redisClient, cfg.ImportRateMax, cfg.ImportRateWindow, "ratelimit:import")
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise import rate limiter")
	}
	importLimit := limitstdlib.NewMiddleware(importLimiter, limitstdlib.WithKeyGetter(ratelimit.KeyByCompanyOrIP))

	apiLimit := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "ratelimit:api"},
		Config:  apiRateConfig(cfg.APIRateLimit),
		OnError: func(err error) { logger.Error().Err(err).Msg("api rate limit") },
	}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{Enable: true}.Middleware)
	r.Use(security.BodyLimit{Max: cfg.ImportMaxBytes + (1 << 20)}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", cfg.CompanyHeader},
		ExposedHeaders:   []string{"Link", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	pprofEnabled := envBool("OBS_ENABLE_PPROF", true)
	if pprofEnabled {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), user, pass))
	}

	healthHandler := health.Handler{
		Checker:      readinessChecker{db: pool, redis: redisClient},
		DBTimeout:    envDurationMillis("HEALTH_READY_DB_TIMEOUT_MS", 500),
		RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(companyResolver.Middleware)
		v.Use(apiLimit.Middleware)
		v.Use(authMiddleware.RequireAuth)

		v.Post("/companies", companyHandler.Create)

		v.Group(func(scoped chi.Router) {
			scoped.Use(httpmw.RequireCompany)

			scoped.Get("/company", companyHandler.Get)
			scoped.Get("/contractors/me", contractorHandler.Me)

			scoped.Route("/invoices", func(inv chi.Router) {
				inv.Get("/", invoiceHandler.ListMine)
				inv.With(idem.Middleware).Post("/", invoiceHandler.Submit)

				inv.Route("/import", func(imp chi.Router) {
					imp.Get("/", importHandler.ListMine)
					imp.With(importLimit.Handler).Post("/", importHandler.Upload)
					imp.Get("/{jobId}", importHandler.Get)
				})

				inv.Get("/{invoiceId}", invoiceHandler.GetMine)
				inv.Put("/{invoiceId}", invoiceHandler.Update)
			})

			scoped.Route("/admin", func(admin chi.Router) {
				admin.Use(httpmw.RequireCompanyAdmin(queries))

				admin.Patch("/company/settings", companyHandler.UpdateSettings)

				admin.Route("/contractors", func(c chi.Router) {
					c.Get("/", contractorHandler.List)
					c.With(auditRecorder.Middleware(audit.HTTPConfig{ResourceType: "contractor"})).Post("/", contractorHandler.Create)
					c.Get("/{contractorId}", contractorHandler.Get)
					c.With(auditRecorder.Middleware(audit.HTTPConfig{ResourceType: "contractor", ResourceIDParam: "contractorId"})).Patch("/{contractorId}", contractorHandler.Update)
					c.With(auditRecorder.Middleware(audit.HTTPConfig{ResourceType: "contractor", ResourceIDParam: "contractorId"})).Post("/{contractorId}/end", contractorHandler.End)
					c.Get("/{contractorId}/grants", equityHandler.ListByContractor)
					c.Get("/{contractorId}/equity", analyticsHandler.GrantAllocations)
				})

				admin.Route("/grants", func(g chi.Router) {
					g.With(auditRecorder.Middleware(audit.HTTPConfig{ResourceType: "grant"})).Post("/", equityHandler.Create)
					g.With(auditRecorder.Middleware(audit.HTTPConfig{ResourceType: "grant", ResourceIDParam: "grantId"})).Post("/{grantId}/cancel", equityHandler.Cancel)
				})

				admin.Route("/invoices", func(ai chi.Router) {
					ai.Get("/", invoiceAdmin.List)
					ai.Get("/{invoiceId}", invoiceAdmin.Get)
					auditInvoice := auditRecorder.Middleware(audit.HTTPConfig{ResourceType: "invoice", ResourceIDParam: "invoiceId"})
					ai.With(auditInvoice).Post("/{invoiceId}/approve", invoiceAdmin.Approve)
					ai.With(auditInvoice).Post("/{invoiceId}/reject", invoiceAdmin.Reject)
					ai.With(auditInvoice, idem.Middleware).Post("/{invoiceId}/pay", invoiceAdmin.Pay)
				})

				admin.Get("/audit-logs", auditHandler.List)

				admin.Route("/analytics", func(an chi.Router) {
					an.Get("/overview", analyticsHandler.Overview)
					an.Get("/volume", analyticsHandler.Volume)
				})
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		health.SetReady(false)
		timeout, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(timeout); err != nil {
			logger.Error().Err(err).Msg("shutdown server")
		}
	}()

	health.SetReady(true)
	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
	logger.Info().Msg("server stopped")
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

// apiRateConfig parses a "count-unit" rate string such as "120-M" into the
// sliding window configuration. Unknown input falls back to 120 per minute.
func apiRateConfig(raw string) ratelimit.Config {
	cfg := ratelimit.Config{Key: ratelimit.KeyByCompanyOrIP, Window: time.Minute, Max: 120}
	parts := strings.SplitN(strings.TrimSpace(raw), "-", 2)
	if len(parts) != 2 {
		return cfg
	}
	max, err := strconv.Atoi(parts[0])
	if err != nil || max <= 0 {
		return cfg
	}
	cfg.Max = max
	switch strings.ToUpper(strings.TrimSpace(parts[1])) {
	case "S":
		cfg.Window = time.Second
	case "M":
		cfg.Window = time.Minute
	case "H":
		cfg.Window = time.Hour
	case "D":
		cfg.Window = 24 * time.Hour
	}
	return cfg
}

type readinessChecker struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func (c readinessChecker) PingDB(ctx context.Context, timeout time.Duration) error {
	if c.db == nil {
		return errors.New("db not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.db.Ping(ctx)
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
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

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/allocs", pprof.Handler("allocs"))
	mux.Handle("/block", pprof.Handler("block"))
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	mux.Handle("/mutex", pprof.Handler("mutex"))
	mux.Handle("/threadcreate", pprof.Handler("threadcreate"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
