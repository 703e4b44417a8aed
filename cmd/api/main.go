package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"depression-api/internal/artifact"
	"depression-api/internal/config"
	"depression-api/internal/dataset"
	"depression-api/internal/db"
	apihttp "depression-api/internal/http"
	"depression-api/internal/logging"
	"depression-api/internal/repository"
	"depression-api/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	store, err := artifact.Load(cfg.ModelPath, cfg.EncodersPath)
	if err != nil {
		logger.Fatal("load artifacts", zap.Error(err))
	}
	info := store.Describe()
	logger.Info("artifacts loaded",
		zap.String("model_kind", info.Kind),
		zap.Int("n_features", info.NumFeatures),
		zap.Strings("encoded_columns", info.EncodedColumns),
	)
	if len(info.IgnoredEncoders) > 0 {
		logger.Warn("ignoring encoders for non-model columns", zap.Strings("columns", info.IgnoredEncoders))
	}

	table, imputed, err := dataset.LoadReference(cfg.DatasetPath, service.OptionHeaders()...)
	if err != nil {
		logger.Fatal("load reference dataset", zap.Error(err), zap.String("path", cfg.DatasetPath))
	}
	logger.Info("reference dataset loaded", zap.String("path", cfg.DatasetPath), zap.Int("rows", table.Rows()))
	for _, res := range imputed {
		logger.Info("imputed column",
			zap.String("rule", res.Rule),
			zap.String("column", res.Column),
			zap.Int("filled", res.Filled),
		)
	}
	optionsSvc, err := service.NewOptionsService(table)
	if err != nil {
		logger.Fatal("build options", zap.Error(err))
	}

	var audit repository.PredictionRepository = repository.NoopPredictionRepository{}
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}

		predictionRepo := repository.NewPgPredictionRepository(pool)
		if err := predictionRepo.EnsureSchema(ctx); err != nil {
			logger.Fatal("ensure predictions schema", zap.Error(err))
		}
		audit = predictionRepo
	} else {
		logger.Info("DATABASE_URL not set, prediction audit disabled")
	}

	var limiter service.RateLimiter = service.AllowAll{}
	if cfg.PredictRateLimit > 0 {
		limiter = service.NewRateLimiter(cfg.PredictRateWindow, cfg.PredictRateLimit)
		if cfg.RedisAddr != "" {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			defer redisClient.Close()
			ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
			if err := redisClient.Ping(ctxPing).Err(); err != nil {
				logger.Warn("redis ping failed, using in-memory rate limiter", zap.Error(err))
			} else {
				limiter = service.NewRedisRateLimiter(logger, redisClient, service.RedisLimiterOptions{
					Window:  cfg.PredictRateWindow,
					Max:     cfg.PredictRateLimit,
					Timeout: cfg.PredictRateRedisTimeout,
					Prefix:  cfg.PredictRateRedisPrefix,
				})
			}
			cancel()
		}
	}

	predictionSvc := service.NewPredictionService(logger, store, audit)
	handlers := apihttp.NewHandlers(logger, predictionSvc, optionsSvc)
	router := apihttp.NewRouter(logger, handlers, apihttp.RouterOptions{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowAllOrigins:  cfg.AllowAllOrigins(),
		PredictRateLimit: limiter,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
