// Package dto はexportanalysisフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "fmt"

// 入力の最大文字数（rune数）です。binding タグの max と一致させること。
const (
	MaxProductLength = 100
	MaxCountryLength = 100
	MaxMessageLength = 2000
)

// 入力検証エラー時のメッセージです。
var (
	ProductRequiredMessage = fmt.Sprintf("product is required (max %d characters)", MaxProductLength)
	CountryRequiredMessage = fmt.Sprintf("country is required (max %d characters)", MaxCountryLength)
	MessageRequiredMessage = fmt.Sprintf("message is required (max %d characters)", MaxMessageLength)
)

// AnalysisReq は /v1/analysis と /v1/report のリクエストボディです。
type AnalysisReq struct {
	Product   string `json:"product" binding:"required,max=100"`
	Language  string `json:"language"`
	RequestID string `json:"request_id" binding:"max=64"`
}

// SuggestionReq は /v1/suggestions のリクエストボディです。
// 入力中に連続して送られるため、クライアントは request_id で古い応答を破棄できます。
type SuggestionReq struct {
	Product   string `json:"product" binding:"required,max=100"`
	Language  string `json:"language"`
	RequestID string `json:"request_id" binding:"max=64"`
}

// MarketInsightReq は /v1/market-insights のリクエストボディです。
type MarketInsightReq struct {
	Product   string `json:"product" binding:"required,max=100"`
	Country   string `json:"country" binding:"required,max=100"`
	Language  string `json:"language"`
	RequestID string `json:"request_id" binding:"max=64"`
}

// ChatReq は /v1/chat のリクエストボディです。
type ChatReq struct {
	Message   string `json:"message" binding:"required,max=2000"`
	Language  string `json:"language"`
	RequestID string `json:"request_id" binding:"max=64"`
}
