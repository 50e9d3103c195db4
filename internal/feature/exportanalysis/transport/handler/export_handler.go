// Package handler はexportanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"umkm_backend/internal/feature/exportanalysis/domain/entity"
	"umkm_backend/internal/feature/exportanalysis/transport/http/dto"
	"umkm_backend/internal/feature/exportanalysis/usecase"
)

// HeaderRequestID はクライアントが応答の対応付けに使うヘッダーです。
const HeaderRequestID = "X-Request-ID"

const invalidKeyMessage = "AI service rejected the API key. Set a valid GEMINI_API_KEY and restart the server."

// ExportUsecase は輸出分析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ExportUsecase interface {
	Analyze(ctx context.Context, req entity.AnalysisRequest) (*usecase.AnalysisResult, error)
	Suggest(ctx context.Context, req entity.AnalysisRequest) (*usecase.SuggestionResult, error)
	MarketInsight(ctx context.Context, req entity.AnalysisRequest, country string) (*usecase.TextResult, error)
	Chat(ctx context.Context, req entity.ChatRequest) (*usecase.TextResult, error)
	Report(ctx context.Context, req entity.AnalysisRequest) (*usecase.ReportResult, error)
}

// ExportHandler は輸出分析のHTTPリクエストを処理します。
type ExportHandler struct {
	uc ExportUsecase
}

// NewExportHandler はExportHandlerの新しいインスタンスを生成します。
func NewExportHandler(uc ExportUsecase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Analyze は商品の輸出機会分析を返します。
//
// エンドポイント: POST /v1/analysis
func (h *ExportHandler) Analyze(c *gin.Context) {
	var req dto.AnalysisReq
	if !bindProduct(c, &req, &req.Product) {
		return
	}
	in := entity.AnalysisRequest{
		RequestID: requestID(c, req.RequestID),
		Product:   req.Product,
		Language:  entity.ParseLanguage(req.Language),
	}

	res, err := h.uc.Analyze(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, "analysis", in.Product)
		return
	}
	c.JSON(http.StatusOK, dto.AnalysisRes{
		RequestID: in.RequestID,
		Source:    string(res.Source),
		Analysis:  dto.NewExportAnalysisRes(res.Analysis),
	})
}

// Suggest は関連商品の候補を返します。
//
// エンドポイント: POST /v1/suggestions
func (h *ExportHandler) Suggest(c *gin.Context) {
	var req dto.SuggestionReq
	if !bindProduct(c, &req, &req.Product) {
		return
	}
	in := entity.AnalysisRequest{
		RequestID: requestID(c, req.RequestID),
		Product:   req.Product,
		Language:  entity.ParseLanguage(req.Language),
	}

	res, err := h.uc.Suggest(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, "suggestions", in.Product)
		return
	}
	c.JSON(http.StatusOK, dto.SuggestionRes{
		RequestID:   in.RequestID,
		Source:      string(res.Source),
		Suggestions: res.Suggestions,
	})
}

// MarketInsight は特定の国向けの市場インサイトを返します。
//
// エンドポイント: POST /v1/market-insights
func (h *ExportHandler) MarketInsight(c *gin.Context) {
	var req dto.MarketInsightReq
	if !bindProduct(c, &req, &req.Product) {
		return
	}
	req.Country = strings.TrimSpace(req.Country)
	if req.Country == "" {
		slog.Warn("market insight validation failed", "error", "blank country", "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: dto.CountryRequiredMessage})
		return
	}
	in := entity.AnalysisRequest{
		RequestID: requestID(c, req.RequestID),
		Product:   req.Product,
		Language:  entity.ParseLanguage(req.Language),
	}

	res, err := h.uc.MarketInsight(c.Request.Context(), in, req.Country)
	if err != nil {
		writeError(c, err, "market_insight", in.Product)
		return
	}
	c.JSON(http.StatusOK, dto.MarketInsightRes{
		RequestID: in.RequestID,
		Source:    string(res.Source),
		Insight:   res.Text,
	})
}

// Chat は輸出コンサルタントとしての応答を返します。
//
// エンドポイント: POST /v1/chat
func (h *ExportHandler) Chat(c *gin.Context) {
	var req dto.ChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("chat validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: dto.MessageRequiredMessage})
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: dto.MessageRequiredMessage})
		return
	}
	in := entity.ChatRequest{
		RequestID: requestID(c, req.RequestID),
		Message:   req.Message,
		Language:  entity.ParseLanguage(req.Language),
	}

	res, err := h.uc.Chat(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, "chat", "")
		return
	}
	c.JSON(http.StatusOK, dto.ChatRes{
		RequestID: in.RequestID,
		Source:    string(res.Source),
		Reply:     res.Text,
	})
}

// Report は分析と推奨各国の市場インサイトをまとめて返します。
//
// エンドポイント: POST /v1/report
func (h *ExportHandler) Report(c *gin.Context) {
	var req dto.AnalysisReq
	if !bindProduct(c, &req, &req.Product) {
		return
	}
	in := entity.AnalysisRequest{
		RequestID: requestID(c, req.RequestID),
		Product:   req.Product,
		Language:  entity.ParseLanguage(req.Language),
	}

	res, err := h.uc.Report(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, "report", in.Product)
		return
	}
	c.JSON(http.StatusOK, dto.ReportRes{
		RequestID:      in.RequestID,
		Source:         string(res.Source),
		Analysis:       dto.NewExportAnalysisRes(res.Analysis),
		MarketInsights: res.MarketInsights,
	})
}

// bindProduct はJSONをバインドし、商品名の前後の空白を取り除きます。
// 失敗時は400を書き込み false を返します。
func bindProduct(c *gin.Context, req any, product *string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		slog.Warn("request validation failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: dto.ProductRequiredMessage})
		return false
	}
	*product = strings.TrimSpace(*product)
	if *product == "" {
		slog.Warn("request validation failed", "error", "blank product", "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: dto.ProductRequiredMessage})
		return false
	}
	return true
}

// requestID はボディ、ヘッダーの順にリクエストIDを探し、なければ生成します。
func requestID(c *gin.Context, fromBody string) string {
	if id := strings.TrimSpace(fromBody); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.GetHeader(HeaderRequestID)); id != "" && len(id) <= 64 {
		return id
	}
	return uuid.NewString()
}

func writeError(c *gin.Context, err error, task, product string) {
	if errors.Is(err, usecase.ErrInvalidAPIKey) {
		slog.Error("AI service rejected API key", "task", task, "error", err)
		c.JSON(http.StatusServiceUnavailable, dto.ErrorRes{Error: invalidKeyMessage})
		return
	}
	slog.Error("export request failed", "task", task, "product", product, "error", err)
	c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
}
