package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soaringjerry/evoa/internal/api"
	"github.com/soaringjerry/evoa/internal/config"
	"github.com/soaringjerry/evoa/internal/logging"
	"github.com/soaringjerry/evoa/internal/metrics"
	"github.com/soaringjerry/evoa/internal/middleware"
	"github.com/soaringjerry/evoa/internal/services"
	"github.com/soaringjerry/evoa/internal/utils"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logging.Error("config error", "error", err)
		os.Exit(1)
	}
	if err := logging.Init(os.Stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		logging.Error("logging config error", "error", err)
		os.Exit(1)
	}
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var gen services.Generator
	if g, err := services.NewGeminiGenerator(ctx, cfg.Gemini); err != nil {
		logging.Warn("analysis backend disabled", "error", err)
	} else {
		gen = g
		logging.Info("analysis backend ready", "model", g.Model())
	}
	upload := services.NewUploadService(cfg.Upload, &http.Client{Timeout: 30 * time.Second})
	if !upload.Configured() {
		logging.Warn("video upload disabled: missing Cloudflare credentials")
	}

	mux := http.NewServeMux()
	// API routes
	router := api.NewRouter(services.NewAnalysisService(gen, cfg.AnalysisTimeout), upload)
	router.Wrap = proxyChain(cfg)
	router.Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		locale := middleware.LocaleFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "evoa API",
			"locale":     locale,
			"msg":        utils.T(locale, "health.ok"),
			"commit":     cfg.Commit,
			"build_time": cfg.BuildTime,
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     cfg.Commit,
			"build_time": cfg.BuildTime,
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	handler := middleware.CORS(cfg.AllowedOrigins)(
		middleware.SecureHeaders(middleware.NoStore(middleware.LocaleMiddleware(mux))))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.AnalysisTimeout + 15*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Info("evoa server listening", "addr", cfg.Addr, "commit", cfg.Commit)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error("server error", "error", err)
		os.Exit(1)
	}
}

// proxyChain puts optional bearer auth in front of the per-client limiter so
// authenticated callers are limited by subject.
func proxyChain(cfg *config.Config) func(http.Handler) http.Handler {
	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled() {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	secret := []byte(cfg.TokenSecret)
	return func(next http.Handler) http.Handler {
		if limiter != nil {
			next = limiter.Middleware(next)
		}
		if len(secret) > 0 {
			next = middleware.WithAuth(secret)(middleware.RequireAuth(next))
		}
		return next
	}
}
