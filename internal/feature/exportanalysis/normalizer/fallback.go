package normalizer

import (
	"fmt"

	"umkm_backend/internal/feature/exportanalysis/domain/entity"
)

// suggestionModifiers are appended to the product name, in order, for fallback suggestions.
var suggestionModifiers = []string{"premium", "organic", "handmade", "traditional", "modern"}

// catalog holds the language-dependent texts of the fallback data.
type catalog struct {
	reasoningUS, reasoningDE, reasoningJP string
	trendQ4, trendQ3, trendQ2             string
	requirementsUS, requirementsDE        []string
	notesUS, notesDE                      string
	insights                              string // %s = product
	marketInsight                         string // %s = product, %s = country
	chatReply                             string
}

var catalogs = map[entity.Language]catalog{
	entity.LanguageEnglish: {
		reasoningUS:    "Strong demand for Indonesian products, favorable trade relations",
		reasoningDE:    "Premium market with high quality standards, good for artisanal products",
		reasoningJP:    "Appreciation for traditional craftsmanship and unique cultural products",
		trendQ4:        "Strong holiday season demand",
		trendQ3:        "Steady growth in international trade",
		trendQ2:        "Recovery from seasonal fluctuations",
		requirementsUS: []string{"FDA Registration", "Product Labeling", "Safety Standards"},
		requirementsDE: []string{"CE Marking", "REACH Compliance", "Import License"},
		notesUS:        "Focus on food safety and labeling requirements",
		notesDE:        "Strict quality standards and environmental compliance",
		insights: "Based on market analysis, %s shows strong export potential with growing demand in key markets. " +
			"Focus on quality standards and proper documentation for successful market entry.",
		marketInsight: "Market analysis for %s in %s shows promising opportunities. " +
			"Focus on quality standards and proper documentation for successful market entry.",
		chatReply: "Sorry, the AI consultant is not available right now. Please try again later, " +
			"or start with a product analysis to see recommended export destinations.",
	},
	entity.LanguageIndonesian: {
		reasoningUS:    "Permintaan kuat untuk produk Indonesia, hubungan perdagangan yang menguntungkan",
		reasoningDE:    "Pasar premium dengan standar kualitas tinggi, cocok untuk produk kerajinan",
		reasoningJP:    "Apresiasi terhadap kerajinan tradisional dan produk budaya yang unik",
		trendQ4:        "Permintaan musim liburan yang kuat",
		trendQ3:        "Pertumbuhan perdagangan internasional yang stabil",
		trendQ2:        "Pemulihan dari fluktuasi musiman",
		requirementsUS: []string{"Registrasi FDA", "Pelabelan Produk", "Standar Keamanan"},
		requirementsDE: []string{"Sertifikasi CE", "Kepatuhan REACH", "Lisensi Impor"},
		notesUS:        "Fokus pada keamanan pangan dan persyaratan pelabelan",
		notesDE:        "Standar kualitas ketat dan kepatuhan lingkungan",
		insights: "Berdasarkan analisis pasar, %s menunjukkan potensi ekspor yang kuat dengan permintaan yang tumbuh di pasar utama. " +
			"Fokus pada standar kualitas dan dokumentasi yang tepat untuk keberhasilan masuk pasar.",
		marketInsight: "Analisis pasar untuk %s di %s menunjukkan peluang menjanjikan. " +
			"Fokus pada standar kualitas dan dokumentasi yang tepat untuk keberhasilan masuk pasar.",
		chatReply: "Maaf, konsultan AI sedang tidak tersedia. Silakan coba lagi nanti, " +
			"atau mulai dengan analisis produk untuk melihat rekomendasi negara tujuan ekspor.",
	},
}

func catalogFor(lang entity.Language) catalog {
	if c, ok := catalogs[lang]; ok {
		return c
	}
	return catalogs[entity.LanguageEnglish]
}

// FallbackAnalysis returns the static analysis for product: three destinations,
// three quarterly trends and two regulations.
func FallbackAnalysis(product string, lang entity.Language) *entity.ExportAnalysis {
	c := catalogFor(lang)
	return &entity.ExportAnalysis{
		Destinations: []entity.Destination{
			{
				Country:     "United States",
				Flag:        "🇺🇸",
				Demand:      entity.DemandHigh,
				Growth:      "+15.2%",
				MarketSize:  "$2.1B",
				Competition: entity.LevelMedium,
				Barriers:    entity.LevelLow,
				Reasoning:   c.reasoningUS,
			},
			{
				Country:     "Germany",
				Flag:        "🇩🇪",
				Demand:      entity.DemandVeryHigh,
				Growth:      "+22.8%",
				MarketSize:  "$1.8B",
				Competition: entity.LevelHigh,
				Barriers:    entity.LevelMedium,
				Reasoning:   c.reasoningDE,
			},
			{
				Country:     "Japan",
				Flag:        "🇯🇵",
				Demand:      entity.DemandHigh,
				Growth:      "+18.5%",
				MarketSize:  "$1.3B",
				Competition: entity.LevelMedium,
				Barriers:    entity.LevelHigh,
				Reasoning:   c.reasoningJP,
			},
		},
		Trends: []entity.Trend{
			{Period: "Q4 2024", Value: 85, Change: "+12%", Description: c.trendQ4},
			{Period: "Q3 2024", Value: 76, Change: "+8%", Description: c.trendQ3},
			{Period: "Q2 2024", Value: 70, Change: "+5%", Description: c.trendQ2},
		},
		Regulations: []entity.Regulation{
			{
				Country:      "United States",
				Requirements: append([]string(nil), c.requirementsUS...),
				Timeline:     "4-6 weeks",
				Cost:         "$500-1,200",
				Notes:        c.notesUS,
			},
			{
				Country:      "Germany",
				Requirements: append([]string(nil), c.requirementsDE...),
				Timeline:     "6-8 weeks",
				Cost:         "$800-2,000",
				Notes:        c.notesDE,
			},
		},
		Insights: fmt.Sprintf(c.insights, product),
	}
}

// FallbackSuggestions returns the product name suffixed with each fixed modifier.
func FallbackSuggestions(product string) []string {
	out := make([]string, 0, len(suggestionModifiers))
	for _, m := range suggestionModifiers {
		out = append(out, product+" "+m)
	}
	return out
}

// FallbackMarketInsight returns the static market insight sentence.
func FallbackMarketInsight(product, country string, lang entity.Language) string {
	return fmt.Sprintf(catalogFor(lang).marketInsight, product, country)
}

// FallbackChatReply returns the message shown when the assistant cannot answer.
func FallbackChatReply(lang entity.Language) string {
	return catalogFor(lang).chatReply
}
