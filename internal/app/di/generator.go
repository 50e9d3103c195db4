// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"umkm_backend/internal/feature/exportanalysis/adapters/gemini"
	"umkm_backend/internal/feature/exportanalysis/usecase"
	"umkm_backend/internal/platform/cache"
	infrahttp "umkm_backend/internal/platform/http"
)

// AI は生成モデル関連のコンポーネントをまとめたものです。
// Generator が nil の場合、AIは無効でありすべての操作はフォールバックを返します。
type AI struct {
	Generator usecase.Generator
	Cache     *cache.CachingGenerator
	Model     string
}

// NewAI はGeminiクライアントを生成し、起動時に一度だけモデルの可用性を確認します。
// 確認に失敗した場合はプロセスの生存期間中AI無効として動作します。
// rdb が nil の場合はキャッシュなしで動作します。
func NewAI(ctx context.Context, cfg gemini.Config, rdb *redis.Client) AI {
	if cfg.Timeout <= 0 {
		cfg.Timeout = gemini.DefaultTimeout
	}
	ttl := cache.LoadResetTTL()
	disabled := AI{Cache: cache.NewCachingGenerator(rdb, nil, ttl, cache.DefaultNamespace)}

	gen, err := gemini.NewGeminiGenerator(ctx, cfg, infrahttp.NewHTTPClient(cfg.Timeout))
	if err != nil {
		slog.Warn("AI disabled: client not created", "error", err)
		return disabled
	}

	probeCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := gen.Probe(probeCtx); err != nil {
		if errors.Is(err, usecase.ErrInvalidAPIKey) {
			slog.Error("AI disabled: API key rejected", "model", gen.Model(), "error", err)
		} else {
			slog.Warn("AI disabled: model probe failed", "model", gen.Model(), "error", err)
		}
		return disabled
	}

	cached := cache.NewCachingGenerator(rdb, gen, ttl, cache.DefaultNamespace)
	slog.Info("AI enabled", "model", gen.Model(), "cache", rdb != nil)
	return AI{Generator: cached, Cache: cached, Model: gen.Model()}
}
