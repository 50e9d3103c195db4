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
	_ "time/tzdata" // CACHE_TIMEZONE をコンテナ内でも解決するため

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"umkm_backend/internal/app/di"
	"umkm_backend/internal/app/router"
	"umkm_backend/internal/feature/exportanalysis/adapters/gemini"
	exporthandler "umkm_backend/internal/feature/exportanalysis/transport/handler"
	exportusecase "umkm_backend/internal/feature/exportanalysis/usecase"
	qlentity "umkm_backend/internal/feature/querylog/domain/entity"
	qlhandler "umkm_backend/internal/feature/querylog/transport/handler"
	qlusecase "umkm_backend/internal/feature/querylog/usecase"
	infradb "umkm_backend/internal/platform/db"
	"umkm_backend/internal/platform/http/handler"
	jwtmw "umkm_backend/internal/platform/jwt"
	infraredis "umkm_backend/internal/platform/redis"
	"umkm_backend/internal/shared/env"
)

// pruneSchedule は毎日 03:00 にクエリログを削除します。
const pruneSchedule = "0 3 * * *"

func main() {
	// .env は任意
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	slog.SetDefault(newLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig()); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// DB（クエリログ用。なくても動作する）
	var gdb *gorm.DB
	if tmp, err := infradb.OpenDB(infradb.LoadConfigFromEnv(), &qlentity.Query{}); err != nil {
		slog.Warn("database unavailable. Running without query log.", "error", err)
	} else {
		gdb = tmp
	}

	// Usecase
	ai := di.NewAI(ctx, gemini.LoadConfig(), rdb)
	queryLog := di.NewQueryLog(gdb)
	exportUC := exportusecase.NewExportUsecase(ai.Generator, di.NewQueryRecorder(queryLog))

	// Handler
	handlers := router.Handlers{
		Export: exporthandler.NewExportHandler(exportUC),
		Status: exporthandler.NewStatusHandler(exportUC, ai.Model),
		Cache:  exporthandler.NewCacheHandler(ai.Cache),
		Ready:  handler.Ready(readinessChecks(rdb, gdb)),
	}
	if queryLog != nil {
		handlers.QueryLog = qlhandler.NewQueryLogHandler(queryLog)
		scheduler := startPruning(queryLog)
		defer scheduler.Stop()
	}

	secret := env.String(jwtmw.EnvKeyJWTSecret, "")
	if secret == "" {
		slog.Warn("JWT_SECRET is not set. Admin endpoints will reject every request.")
	}

	r := router.NewRouter(router.Config{
		AllowedOrigins: env.List("CORS_ALLOWED_ORIGINS", nil),
		AdminSecret:    secret,
	}, handlers)

	srv := &http.Server{
		Addr:              ":" + env.String("PORT", "8080"),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr, "ai_enabled", exportUC.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// newLogger は LOG_LEVEL と LOG_FORMAT からロガーを生成します。
func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(env.String("LOG_LEVEL", "info"))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if env.String("LOG_FORMAT", "text") == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func readinessChecks(rdb *redisv9.Client, gdb *gorm.DB) map[string]handler.Check {
	checks := map[string]handler.Check{}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if gdb != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	return checks
}

// startPruning は保持期間を過ぎたクエリログを毎日削除するジョブを開始します。
func startPruning(ql *qlusecase.QueryLogUsecase) *cron.Cron {
	retention := time.Duration(env.Int("QUERYLOG_RETENTION_DAYS", 30)) * 24 * time.Hour
	if retention <= 0 {
		retention = qlusecase.DefaultRetention
	}

	c := cron.New()
	if _, err := c.AddFunc(pruneSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := ql.Prune(ctx, retention)
		if err != nil {
			slog.Error("query log prune failed", "error", err)
			return
		}
		slog.Info("query log pruned", "deleted", n, "retention", retention.String())
	}); err != nil {
		panic(fmt.Sprintf("invalid prune schedule %q: %v", pruneSchedule, err))
	}
	c.Start()
	return c
}
