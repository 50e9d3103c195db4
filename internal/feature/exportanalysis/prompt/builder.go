// Package prompt は生成モデルに送るプロンプトを組み立てます。
// すべての関数は入力のみに依存する純粋関数で、入力の検証は行いません。
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"umkm_backend/internal/feature/exportanalysis/domain/entity"
)

// exampleTrendValue はテンプレート内で value の例として示す値です。
const exampleTrendValue = 85

// BuildAnalysisPrompt は輸出機会分析のプロンプトを生成します。
func BuildAnalysisPrompt(product string, lang entity.Language) string {
	t := templatesFor(lang)

	var b strings.Builder
	fmt.Fprintf(&b, t.analysisIntro, product)
	b.WriteString("\n\n")
	b.WriteString(analysisTemplate(t.analysisFields))
	b.WriteString("\n\n")
	writeList(&b, t.focusHeading, t.analysisFocus, true)
	b.WriteString("\n")
	b.WriteString(t.analysisClosing)
	return b.String()
}

// BuildSuggestionPrompt は関連商品の候補リストを求めるプロンプトを生成します。
func BuildSuggestionPrompt(product string, lang entity.Language) string {
	t := templatesFor(lang)

	var b strings.Builder
	fmt.Fprintf(&b, t.suggestionIntro, product)
	b.WriteString("\n")
	b.WriteString(t.suggestionExample)
	b.WriteString("\n\n")
	writeList(&b, t.focusHeading, t.suggestionFocus, false)
	b.WriteString("\n")
	b.WriteString(t.suggestionClosing)
	return b.String()
}

// BuildMarketInsightPrompt は特定の国向けの市場インサイト（自由記述）を求めるプロンプトを生成します。
func BuildMarketInsightPrompt(product, country string, lang entity.Language) string {
	t := templatesFor(lang)

	var b strings.Builder
	fmt.Fprintf(&b, t.insightIntro, product, country)
	b.WriteString("\n")
	writeList(&b, t.includeHeading, t.insightTopics, false)
	b.WriteString("\n")
	b.WriteString(t.insightClosing)
	return b.String()
}

// BuildChatPrompt は輸出コンサルタントとしてのチャット応答を求めるプロンプトを生成します。
func BuildChatPrompt(message string, lang entity.Language) string {
	t := templatesFor(lang)

	var b strings.Builder
	b.WriteString(t.chatPersona)
	b.WriteString("\n\n")
	b.WriteString(message)
	b.WriteString("\n\n")
	b.WriteString(t.chatClosing)
	return b.String()
}

// analysisTemplate はAnalysisPayloadのキー名のまま、値を例示文にしたJSONを返します。
func analysisTemplate(h fieldHints) string {
	example := AnalysisPayload{
		Destinations: []DestinationPayload{{
			Country:     h.country,
			Flag:        h.flag,
			Demand:      h.demand,
			Growth:      h.growth,
			MarketSize:  h.marketSize,
			Competition: h.competition,
			Barriers:    h.barriers,
			Reasoning:   h.reasoning,
		}},
		Trends: []TrendPayload{{
			Period:      h.period,
			Value:       exampleTrendValue,
			Change:      h.change,
			Description: h.description,
		}},
		Regulations: []RegulationPayload{{
			Country:      h.country,
			Requirements: []string{h.requirement1, h.requirement2},
			Timeline:     h.timeline,
			Cost:         h.cost,
			Notes:        h.notes,
		}},
		Insights: h.insights,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	// 固定の構造体なので失敗しない
	_ = enc.Encode(example)
	return strings.TrimSpace(buf.String())
}

func writeList(b *strings.Builder, heading string, items []string, numbered bool) {
	b.WriteString(heading)
	b.WriteString("\n")
	for i, item := range items {
		if numbered {
			fmt.Fprintf(b, "%d. %s\n", i+1, item)
		} else {
			fmt.Fprintf(b, "- %s\n", item)
		}
	}
}
