package entity

// TaskKind はプロンプトテンプレートと期待する応答形式を選択するタスク種別です。
type TaskKind string

const (
	TaskAnalysis      TaskKind = "analysis"
	TaskSuggestions   TaskKind = "suggestions"
	TaskMarketInsight TaskKind = "market_insight"
	TaskChat          TaskKind = "chat"
)

// Cacheable はタスクの応答をキャッシュしてよいかを返します。チャットは対象外です。
func (t TaskKind) Cacheable() bool {
	return t != TaskChat
}

// Source は結果がどのように生成されたかを表します。
type Source string

const (
	// SourceModel はモデル応答から復元された結果です。
	SourceModel Source = "model"
	// SourceFallback は呼び出しまたは解析の失敗により静的データに置き換えた結果です。
	SourceFallback Source = "fallback"
	// SourceDisabled はAIが無効なため呼び出しを行わなかった結果です。
	SourceDisabled Source = "disabled"
)

// AnalysisRequest は1回の問い合わせの入力です。
// RequestID は応答の対応付けにのみ使われ、生成内容には影響しません。
type AnalysisRequest struct {
	RequestID string
	Product   string
	Language  Language
}

// ChatRequest はチャット1往復分の入力です。
type ChatRequest struct {
	RequestID string
	Message   string
	Language  Language
}
