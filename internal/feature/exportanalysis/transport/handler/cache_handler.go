package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"umkm_backend/internal/feature/exportanalysis/domain/entity"
	"umkm_backend/internal/feature/exportanalysis/transport/http/dto"
)

// CachePurger はキャッシュ済みのモデル応答を削除します。
type CachePurger interface {
	Purge(ctx context.Context, task entity.TaskKind) (int, error)
}

// CacheHandler は管理者向けのキャッシュ操作を処理します。
type CacheHandler struct {
	purger CachePurger
}

// NewCacheHandler はCacheHandlerの新しいインスタンスを生成します。
func NewCacheHandler(p CachePurger) *CacheHandler {
	return &CacheHandler{purger: p}
}

// Purge はキャッシュを削除します。task を省略するとすべてのタスクが対象です。
//
// エンドポイント: DELETE /v1/admin/cache?task=analysis
func (h *CacheHandler) Purge(c *gin.Context) {
	task := entity.TaskKind(c.Query("task"))
	switch task {
	case "", entity.TaskAnalysis, entity.TaskSuggestions, entity.TaskMarketInsight:
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "task must be one of analysis, suggestions, market_insight"})
		return
	}

	n, err := h.purger.Purge(c.Request.Context(), task)
	if err != nil {
		slog.Error("cache purge failed", "task", task, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "cache purge failed"})
		return
	}
	slog.Info("cache purged", "task", task, "deleted", n, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
