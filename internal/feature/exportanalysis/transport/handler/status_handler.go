package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"umkm_backend/internal/feature/exportanalysis/transport/http/dto"
)

// AvailabilityReporter はAIが有効かどうかを返します。
type AvailabilityReporter interface {
	Enabled() bool
}

// StatusHandler はAI機能の利用可否を返します。
type StatusHandler struct {
	uc    AvailabilityReporter
	model string
}

// NewStatusHandler はStatusHandlerの新しいインスタンスを生成します。
func NewStatusHandler(uc AvailabilityReporter, model string) *StatusHandler {
	return &StatusHandler{uc: uc, model: model}
}

// Status はAIの有効状態とモデル名を返します。無効時はモデル名を省略します。
//
// エンドポイント: GET /v1/status
func (h *StatusHandler) Status(c *gin.Context) {
	res := dto.StatusRes{AIEnabled: h.uc.Enabled()}
	if res.AIEnabled {
		res.Model = h.model
	}
	c.JSON(http.StatusOK, res)
}
