// PlantDiseaseDetector | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/admin"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/auth"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/classifier"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/config"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/disease"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/health"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/history"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/middleware"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/server"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/storage"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	clf := classifier.NewRemote(cfg.Classifier)
	if err := clf.Load(ctx); err != nil {
		return err
	}

	store := storage.NewLocalStore(cfg.Upload.Dir)

	var mirror disease.Mirror
	if cfg.Mirror.Enabled {
		m, mErr := storage.NewMirror(ctx, cfg.Mirror)
		if mErr != nil {
			logger.Warn("image mirror disabled", "error", mErr)
		} else {
			mirror = m
			logger.Info("image mirror enabled",
				"bucket", cfg.Mirror.Bucket,
			)
		}
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(userSvc, jwtManager)
	authHandler := auth.NewHandler(authSvc, cfg.JWT)

	historyRepo := history.NewRepository(db.DB)
	historySvc := history.NewService(historyRepo)
	historyHandler := history.NewHandler(historySvc)

	diseaseRepo := disease.NewRepository(db.DB)
	diseaseSvc := disease.NewService(diseaseRepo, store, clf, historySvc, mirror)
	diseaseHandler := disease.NewHandler(
		diseaseSvc,
		cfg.Seed.CatalogPath,
		cfg.Upload.MaxSizeBytes,
	)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		UploadDir:  cfg.Upload.Dir,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(
		jwtManager,
		userSvc,
		cfg.JWT.CookieName,
	)
	adminOnly := middleware.RequireAdmin

	authHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router, authHandler.Logout, authenticator, adminOnly)
	diseaseHandler.RegisterRoutes(router, authenticator, adminOnly)
	historyHandler.RegisterRoutes(router, authenticator)
	adminHandler.RegisterRoutes(router, authenticator, adminOnly)

	mountUploads(router, cfg.Upload.Dir)

	sweeper := storage.NewSweeper(
		cfg.Upload.Dir,
		cfg.Upload.RetentionAge,
		cfg.Upload.SweepInterval,
		logger,
	)
	go sweeper.Run(ctx)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// mountUploads serves stored leaf photos read-only so history entries
// can link back to the image that produced them.
func mountUploads(r chi.Router, dir string) {
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(dir)))

	r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.Contains(req.URL.Path, "..") {
			http.NotFound(w, req)
			return
		}
		fileServer.ServeHTTP(w, req)
	})
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
