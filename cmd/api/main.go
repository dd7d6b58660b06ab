// @title           Social Feed API
// @version         1.0
// @description     소셜 피드 백엔드: 게시물, 댓글, 좋아요, 피드 집계
// @termsOfService  http://swagger.io/terms/

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"social-feed-api/internal/client"
	"social-feed-api/internal/config"
	"social-feed-api/internal/database"
	"social-feed-api/internal/job"
	"social-feed-api/internal/metrics"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Social Feed API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize metrics
	m := metrics.NewWithLogger(logger)

	// Initialize database (실패해도 앱은 시작됨 - pod 생존 보장)
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		// 백그라운드에서 DB 연결 재시도 (5초 간격)
		database.NewAsync(dbConfig, 5*time.Second)
		db = database.GetDB()
	} else {
		logger.Info("Database connected successfully")

		if err := database.AutoMigrate(db); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		} else {
			logger.Info("Database migrations completed")
		}

		database.RegisterMetricsCallbacks(db, m)
	}

	// Initialize Redis for the feed cache (optional)
	redisClient, err := database.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Failed to connect to Redis, feed caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("Redis connected successfully")
	}

	// Initialize storage client
	var storage client.StorageClient
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		s3Client, err := client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize storage client, image features may be limited", zap.Error(err))
		} else {
			storage = s3Client
			logger.Info("Storage client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, image features disabled")
	}

	// Periodic DB pool stats for the dashboard
	if db != nil {
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for range ticker.C {
				if sqlDB, err := db.DB(); err == nil {
					m.UpdateDBStats(sqlDB.Stats())
				}
			}
		}()
	}

	// Business metrics collector
	var collector *metrics.BusinessMetricsCollector
	if db != nil {
		collector = metrics.NewBusinessMetricsCollector(db, m, logger)
		collector.Start()
	}

	// Cleanup job: purge soft-deleted posts past retention with their images
	cronRunner := cron.New()
	if db != nil && storage != nil {
		postRepo := repository.NewPostRepository(db)
		cleanupJob := job.NewCleanupJob(postRepo, storage, cfg.Cleanup.Retention, logger)
		if _, err := cronRunner.AddJob(cfg.Cleanup.Schedule, cleanupJob); err != nil {
			logger.Warn("Failed to schedule cleanup job", zap.Error(err))
		} else {
			logger.Info("Cleanup job scheduled",
				zap.String("schedule", cfg.Cleanup.Schedule),
				zap.Duration("retention", cfg.Cleanup.Retention),
			)
		}
	}
	cronRunner.Start()

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		Cfg:     cfg,
		DB:      db,
		Redis:   redisClient,
		Storage: storage,
		Metrics: m,
		Logger:  logger,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Social Feed API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	cronRunner.Stop()
	if collector != nil {
		collector.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
