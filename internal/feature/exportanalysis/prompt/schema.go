package prompt

import "umkm_backend/internal/feature/exportanalysis/domain/entity"

// Shape は期待する応答の文法です。
type Shape string

const (
	ShapeObject Shape = "object" // JSONオブジェクト
	ShapeArray  Shape = "array"  // JSON配列
	ShapeProse  Shape = "prose"  // 自由記述
)

// ExpectedShape はタスク種別ごとに受け入れ可能な応答形式を返します。
func ExpectedShape(task entity.TaskKind) Shape {
	switch task {
	case entity.TaskAnalysis:
		return ShapeObject
	case entity.TaskSuggestions:
		return ShapeArray
	default:
		return ShapeProse
	}
}

// AnalysisPayload は分析プロンプトがモデルに要求するJSON構造です。
// キー名は応答言語によらず固定で、normalizerはこの構造体でデコードします。
type AnalysisPayload struct {
	Destinations []DestinationPayload `json:"destinations" validate:"required,min=1,dive"`
	Trends       []TrendPayload       `json:"trends" validate:"dive"`
	Regulations  []RegulationPayload  `json:"regulations" validate:"required,min=1,dive"`
	Insights     string               `json:"insights" validate:"required"`
}

// DestinationPayload は destinations 配列の要素です。
type DestinationPayload struct {
	Country     string `json:"country" validate:"required"`
	Flag        string `json:"flag"`
	Demand      string `json:"demand" validate:"required,demand"`
	Growth      string `json:"growth" validate:"required"`
	MarketSize  string `json:"marketSize" validate:"required"`
	Competition string `json:"competition" validate:"required,level"`
	Barriers    string `json:"barriers" validate:"required,level"`
	Reasoning   string `json:"reasoning" validate:"required"`
}

// TrendPayload は trends 配列の要素です。
type TrendPayload struct {
	Period      string `json:"period" validate:"required"`
	Value       int    `json:"value" validate:"min=0,max=100"`
	Change      string `json:"change"`
	Description string `json:"description"`
}

// RegulationPayload は regulations 配列の要素です。
type RegulationPayload struct {
	Country      string   `json:"country" validate:"required"`
	Requirements []string `json:"requirements" validate:"required,min=1,dive,required"`
	Timeline     string   `json:"timeline"`
	Cost         string   `json:"cost"`
	Notes        string   `json:"notes"`
}
