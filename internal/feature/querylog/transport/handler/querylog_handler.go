// Package handler はquerylogフィーチャーの管理者向けHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"umkm_backend/internal/feature/querylog/domain/entity"
	"umkm_backend/internal/feature/querylog/transport/http/dto"
	"umkm_backend/internal/feature/querylog/usecase"
)

// QueryLogUsecase は問い合わせログ参照のユースケースインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type QueryLogUsecase interface {
	ListRecent(ctx context.Context, limit int) ([]entity.Query, error)
	Popular(ctx context.Context, limit int) ([]entity.ProductCount, error)
}

// QueryLogHandler は問い合わせログに関するHTTPリクエストを処理します。
type QueryLogHandler struct {
	uc QueryLogUsecase
}

// NewQueryLogHandler は新しい QueryLogHandler を作成します。
func NewQueryLogHandler(uc QueryLogUsecase) *QueryLogHandler {
	return &QueryLogHandler{uc: uc}
}

// ListRecent は直近の問い合わせを新しい順に返します。
//
// エンドポイント: GET /v1/admin/queries?limit=20
func (h *QueryLogHandler) ListRecent(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	queries, err := h.uc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.QueryItem, 0, len(queries))
	for _, q := range queries {
		out = append(out, dto.QueryItem{
			RequestID: q.RequestID,
			Product:   q.Product,
			Language:  q.Language,
			Task:      q.Task,
			Source:    q.Source,
			CreatedAt: q.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Popular は問い合わせの多い商品を返します。
//
// エンドポイント: GET /v1/admin/queries/popular?limit=20
func (h *QueryLogHandler) Popular(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	counts, err := h.uc.Popular(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.ProductCountItem, 0, len(counts))
	for _, pc := range counts {
		out = append(out, dto.ProductCountItem{Product: pc.Product, Count: pc.Count})
	}
	c.JSON(http.StatusOK, out)
}

func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return 0, false
	}
	return n, true
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrInvalidLimit) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slog.Error("query log request failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
