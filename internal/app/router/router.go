// Package router はHTTPルーティングを組み立てます。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	exporthandler "umkm_backend/internal/feature/exportanalysis/transport/handler"
	qlhandler "umkm_backend/internal/feature/querylog/transport/handler"
	"umkm_backend/internal/platform/http/handler"
	jwtmw "umkm_backend/internal/platform/jwt"
)

// Config はルーター全体の設定です。
type Config struct {
	// AllowedOrigins が空、または "*" を含む場合はすべてのオリジンを許可します。
	AllowedOrigins []string
	// AdminSecret は管理APIのトークン検証に使う鍵です。
	AdminSecret string
}

// Handlers はルーターに登録するハンドラー群です。QueryLog は nil でも構いません。
type Handlers struct {
	Export   *exporthandler.ExportHandler
	Status   *exporthandler.StatusHandler
	Cache    *exporthandler.CacheHandler
	QueryLog *qlhandler.QueryLogHandler
	Ready    gin.HandlerFunc
}

func NewRouter(cfg Config, h Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	if h.Ready != nil {
		r.GET("/readyz", h.Ready)
	}

	v1 := r.Group("/v1")
	{
		v1.POST("/analysis", h.Export.Analyze)
		v1.POST("/suggestions", h.Export.Suggest)
		v1.POST("/market-insights", h.Export.MarketInsight)
		v1.POST("/chat", h.Export.Chat)
		v1.POST("/report", h.Export.Report)
		v1.GET("/status", h.Status.Status)
	}

	// 管理API（admin ロールのJWTが必要）
	admin := v1.Group("/admin")
	admin.Use(jwtmw.AdminRequired(cfg.AdminSecret))
	{
		admin.DELETE("/cache", h.Cache.Purge)
		if h.QueryLog != nil {
			admin.GET("/queries", h.QueryLog.ListRecent)
			admin.GET("/queries/popular", h.QueryLog.Popular)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", exporthandler.HeaderRequestID},
		ExposeHeaders: []string{exporthandler.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
