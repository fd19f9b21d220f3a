package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/realmeta/artlens/internal/config"
	"github.com/realmeta/artlens/internal/db"
	dbRedis "github.com/realmeta/artlens/internal/db/redis"
	"github.com/realmeta/artlens/internal/domain"
	logpkg "github.com/realmeta/artlens/internal/logger"
	"github.com/realmeta/artlens/internal/metrics"
	artworkrepo "github.com/realmeta/artlens/internal/repository/artwork"
	"github.com/realmeta/artlens/internal/repository/embcache"
	museumrepo "github.com/realmeta/artlens/internal/repository/museum"
	"github.com/realmeta/artlens/internal/storage"
	chiTransport "github.com/realmeta/artlens/internal/transport/chi"
	openaiEmb "github.com/realmeta/artlens/internal/transport/openai"
	artworkuc "github.com/realmeta/artlens/internal/usecase/artwork"
	healthuc "github.com/realmeta/artlens/internal/usecase/health"
	recognitionuc "github.com/realmeta/artlens/internal/usecase/recognition"
	"github.com/realmeta/artlens/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting artlens API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Valkey speaks RESP too, so both drivers share the rueidis store.
	var store db.Store
	switch cfg.Database.Driver {
	case "valkey", "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register embedding metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()

	embedder, err := buildEmbedder(cfg.Embedding, store, logger)
	if err != nil {
		logger.Fatal("Failed to build embedder chain", zap.Error(err))
	}

	uploads, err := storage.NewUploadStore(cfg.Storage.UploadDir, logger)
	if err != nil {
		logger.Fatal("Failed to create upload store", zap.Error(err))
	}

	// Repositories
	artRepo := artworkrepo.New(store, logger)
	musRepo := museumrepo.New(store)

	// Use case services
	recognitionSvc := recognitionuc.New(musRepo, artRepo, embedder, uploads, recognitionuc.Config{
		Threshold:    cfg.Recognition.Threshold,
		TopK:         cfg.Recognition.TopK,
		EmbedTimeout: time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
	}, logger)
	artworkSvc := artworkuc.New(artRepo, musRepo, embedder, logger)
	healthSvc := healthuc.New(store, newEmbeddingHealthChecker(embedder))

	server := chiTransport.NewServer(
		artworkSvc, recognitionSvc, healthSvc,
		int64(cfg.Recognition.MaxUploadMB)<<20, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain:
// OpenAI providers -> Fallback -> Cached, wrapped in a lazy initializer
// so startup does not depend on provider availability.
func buildEmbedder(
	embCfg config.EmbeddingConfig, store db.Store, logger *zap.Logger,
) (domain.ImageEmbedder, error) {
	if len(embCfg.Providers) == 0 {
		return nil, fmt.Errorf("no embedding providers configured")
	}

	lazy := domain.NewLazyEmbedder(func() (domain.ImageEmbedder, error) {
		providers := make([]domain.ImageEmbedder, 0, len(embCfg.Providers))
		for _, p := range embCfg.Providers {
			providers = append(providers, openaiEmb.NewEmbedder(&openaiEmb.Config{
				APIKey:     p.APIKey,
				BaseURL:    p.BaseURL,
				Model:      p.Model,
				Dimensions: p.Dimensions,
				Provider:   p.Name,
				Logger:     logger,
			}))
			logger.Info("Embedding provider configured",
				zap.String("provider", p.Name),
				zap.String("model", p.Model),
				zap.Int("dimensions", p.Dimensions))
		}

		chain, err := domain.NewFallbackEmbedder(providers...)
		if err != nil {
			return nil, err
		}

		var embedder domain.ImageEmbedder = chain
		if store != nil {
			embedder = embcache.New(embedder, store, metrics.EmbeddingCacheTotal, logger)
		}
		return embedder, nil
	})
	return lazy, nil
}

// embeddingHealthChecker adapts domain.ImageEmbedder to health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.ImageEmbedder
}

func newEmbeddingHealthChecker(embedder domain.ImageEmbedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
