package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"page-insight/internal/config"
	"page-insight/internal/infra/fetcher"
	"page-insight/internal/observability/logging"
	"page-insight/internal/observability/tracing"
	"page-insight/internal/textanalysis"
	analyzeUC "page-insight/internal/usecase/analyze"
	compressUC "page-insight/internal/usecase/compress"

	hhttp "page-insight/internal/handler/http"
	hanalyze "page-insight/internal/handler/http/analyze"
	hcompress "page-insight/internal/handler/http/compress"
	"page-insight/internal/handler/http/middleware"
	"page-insight/internal/handler/http/requestid"
)

// rateLimitCleanupInterval is how often idle per-IP buckets are evicted.
const rateLimitCleanupInterval = time.Minute

// ServerComponents holds the pieces runServer needs besides the handler.
type ServerComponents struct {
	Handler       http.Handler
	IPRateLimiter *middleware.IPRateLimiter
	Draining      *atomic.Bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)

	shutdownTracing := tracing.InitProvider(cfg.Tracing.ServiceName, cfg.Server.Version)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	components, err := setupServer(logger, cfg)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, cfg.Server, components)
}

// initLogger creates the process logger and installs it as the slog default.
func initLogger(cfg config.LogConfig) *slog.Logger {
	logger := logging.New(cfg.Options())
	slog.SetDefault(logger)
	return logger
}

// setupServer wires services, routes and the middleware chain.
func setupServer(logger *slog.Logger, cfg *config.Config) (*ServerComponents, error) {
	pageFetcher := fetcher.NewPageFetcher(cfg.Fetch)
	analyzeSvc := analyzeUC.NewService(pageFetcher, cfg.Fetch.Parallelism)
	compressSvc := compressUC.NewService(textanalysis.FrequencySummarizer{})

	proxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return nil, err
	}
	extractor := middleware.NewIPExtractor(middleware.TrustedProxyConfig{
		Enabled:      len(proxies) > 0,
		AllowedCIDRs: proxies,
	})
	ipRateLimiter := middleware.NewIPRateLimiter(middleware.IPRateLimiterConfig{
		RPS:     cfg.RateLimit.RPS,
		Burst:   cfg.RateLimit.Burst,
		Enabled: cfg.RateLimit.Enabled,
	}, extractor)

	if cfg.RateLimit.Enabled {
		logger.Info("IP rate limiting enabled",
			slog.Float64("rps", cfg.RateLimit.RPS),
			slog.Int("burst", cfg.RateLimit.Burst),
			slog.Int("trusted_proxies", len(proxies)))
	} else {
		logger.Warn("IP rate limiting is disabled")
	}

	draining := &atomic.Bool{}

	mux := http.NewServeMux()
	hanalyze.Register(mux, analyzeSvc, cfg.Server.RequestTimeout)
	hcompress.Register(mux, compressSvc, cfg.Server.RequestTimeout)

	mux.Handle("/health", &hhttp.HealthHandler{
		Version:     cfg.Server.Version,
		Breaker:     pageFetcher.Breaker(),
		RateLimiter: ipRateLimiter,
	})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/ready", &hhttp.ReadyHandler{Draining: draining})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	handler, err := applyMiddleware(logger, cfg, mux, ipRateLimiter)
	if err != nil {
		return nil, err
	}

	return &ServerComponents{
		Handler:       handler,
		IPRateLimiter: ipRateLimiter,
		Draining:      draining,
	}, nil
}

// applyMiddleware wraps handler in the request pipeline:
//
//	request ID -> tracing -> logging -> metrics -> CORS -> IP rate limit ->
//	recover -> body limit -> handler
//
// Every response, including preflights, 429s and recovered panics, is logged
// and counted. CORS still answers preflights before the rate limiter.
func applyMiddleware(logger *slog.Logger, cfg *config.Config, handler http.Handler, ipRateLimiter *middleware.IPRateLimiter) (http.Handler, error) {
	corsConfig, err := middleware.NewCORSConfig(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
		cfg.CORS.MaxAge,
	)
	if err != nil {
		return nil, err
	}
	corsConfig.Logger = logger

	logger.Info("CORS enabled",
		slog.Any("allowed_origins", cfg.CORS.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Any("allowed_headers", corsConfig.AllowedHeaders),
		slog.Int("max_age", corsConfig.MaxAge))

	return hhttp.Chain(handler,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		middleware.CORS(*corsConfig),
		ipRateLimiter.Middleware(),
		hhttp.Recover(logger),
		hhttp.LimitRequestBody(cfg.Server.MaxBodyBytes),
	), nil
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg config.ServerConfig, components *ServerComponents) {
	// Context for background goroutines and request base context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go components.IPRateLimiter.StartCleanup(ctx, rateLimitCleanupInterval)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           components.Handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout, // Slowloris
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr()),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down server...", slog.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}

	// /ready starts failing so load balancers stop routing here
	components.Draining.Store(true)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	cancel()
	logger.Info("server stopped")
}
