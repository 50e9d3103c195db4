package dto

import "umkm_backend/internal/feature/exportanalysis/domain/entity"

// ErrorRes はエラー応答です。
type ErrorRes struct {
	Error string `json:"error"`
}

// DestinationRes は推奨輸出先です。キー名はフロントエンドの既存の型に合わせています。
type DestinationRes struct {
	Country     string `json:"country"`
	Flag        string `json:"flag,omitempty"`
	Demand      string `json:"demand"`
	Growth      string `json:"growth"`
	MarketSize  string `json:"marketSize"`
	Competition string `json:"competition"`
	Barriers    string `json:"barriers"`
	Reasoning   string `json:"reasoning"`
}

// TrendRes は需要トレンドの1期間です。
type TrendRes struct {
	Period      string `json:"period"`
	Value       int    `json:"value"`
	Change      string `json:"change"`
	Description string `json:"description"`
}

// RegulationRes は輸出先の規制要件です。
type RegulationRes struct {
	Country      string   `json:"country"`
	Requirements []string `json:"requirements"`
	Timeline     string   `json:"timeline"`
	Cost         string   `json:"cost"`
	Notes        string   `json:"notes"`
}

// ExportAnalysisRes は分析結果本体です。
type ExportAnalysisRes struct {
	Destinations []DestinationRes `json:"destinations"`
	Trends       []TrendRes       `json:"trends"`
	Regulations  []RegulationRes  `json:"regulations"`
	Insights     string           `json:"insights"`
}

// AnalysisRes は /v1/analysis のレスポンスです。
type AnalysisRes struct {
	RequestID string            `json:"request_id"`
	Source    string            `json:"source"`
	Analysis  ExportAnalysisRes `json:"analysis"`
}

// SuggestionRes は /v1/suggestions のレスポンスです。
type SuggestionRes struct {
	RequestID   string   `json:"request_id"`
	Source      string   `json:"source"`
	Suggestions []string `json:"suggestions"`
}

// MarketInsightRes は /v1/market-insights のレスポンスです。
type MarketInsightRes struct {
	RequestID string `json:"request_id"`
	Source    string `json:"source"`
	Insight   string `json:"insight"`
}

// ChatRes は /v1/chat のレスポンスです。
type ChatRes struct {
	RequestID string `json:"request_id"`
	Source    string `json:"source"`
	Reply     string `json:"reply"`
}

// ReportRes は /v1/report のレスポンスです。
type ReportRes struct {
	RequestID      string            `json:"request_id"`
	Source         string            `json:"source"`
	Analysis       ExportAnalysisRes `json:"analysis"`
	MarketInsights map[string]string `json:"market_insights"`
}

// StatusRes は /v1/status のレスポンスです。
type StatusRes struct {
	AIEnabled bool   `json:"ai_enabled"`
	Model     string `json:"model,omitempty"`
}

// NewExportAnalysisRes はエンティティをレスポンス形式に変換します。
func NewExportAnalysisRes(a *entity.ExportAnalysis) ExportAnalysisRes {
	out := ExportAnalysisRes{
		Destinations: make([]DestinationRes, 0, len(a.Destinations)),
		Trends:       make([]TrendRes, 0, len(a.Trends)),
		Regulations:  make([]RegulationRes, 0, len(a.Regulations)),
		Insights:     a.Insights,
	}
	for _, d := range a.Destinations {
		out.Destinations = append(out.Destinations, DestinationRes{
			Country:     d.Country,
			Flag:        d.Flag,
			Demand:      string(d.Demand),
			Growth:      d.Growth,
			MarketSize:  d.MarketSize,
			Competition: string(d.Competition),
			Barriers:    string(d.Barriers),
			Reasoning:   d.Reasoning,
		})
	}
	for _, t := range a.Trends {
		out.Trends = append(out.Trends, TrendRes(t))
	}
	for _, r := range a.Regulations {
		out.Regulations = append(out.Regulations, RegulationRes(r))
	}
	return out
}
