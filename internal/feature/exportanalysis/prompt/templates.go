package prompt

import "umkm_backend/internal/feature/exportanalysis/domain/entity"

// templateSet は1言語分のプロンプト文言です。JSONのキー名は言語によらず英語で固定です。
type templateSet struct {
	analysisIntro   string // %s = product
	analysisFields  fieldHints
	analysisFocus   []string
	analysisClosing string

	suggestionIntro   string // %s = product
	suggestionExample string
	suggestionFocus   []string
	suggestionClosing string

	insightIntro   string // %s = product, %s = country
	insightTopics  []string
	insightClosing string

	chatPersona string
	chatClosing string

	focusHeading   string
	includeHeading string
}

// fieldHints はJSONテンプレートの各フィールドに添える例示文です。
type fieldHints struct {
	country, flag, demand, growth, marketSize, competition, barriers, reasoning string
	period, change, description                                                 string
	requirement1, requirement2, timeline, cost, notes                           string
	insights                                                                    string
}

var templates = map[entity.Language]templateSet{
	entity.LanguageEnglish: {
		analysisIntro: `Analyze export opportunities for "%s" and provide detailed insights in the following JSON format:`,
		analysisFields: fieldHints{
			country:      "Country Name",
			flag:         "Country Flag Emoji",
			demand:       "Very High/High/Medium/Low",
			growth:       "Growth percentage like +15.2%",
			marketSize:   "Market size like $2.1B",
			competition:  "High/Medium/Low",
			barriers:     "High/Medium/Low",
			reasoning:    "Brief explanation for this recommendation",
			period:       "Time period like Q4 2024",
			change:       "Change percentage like +12%",
			description:  "Brief trend description",
			requirement1: "Requirement 1",
			requirement2: "Requirement 2",
			timeline:     "Processing time like 4-6 weeks",
			cost:         "Estimated cost like $500-1,200",
			notes:        "Additional notes about regulations",
			insights:     "Overall market insights and recommendations for this product",
		},
		analysisFocus: []string{
			"Top 3 most promising export destinations",
			"Current market trends and demand patterns",
			"Key regulatory requirements for each destination",
			"Practical insights for Indonesian SMEs",
		},
		analysisClosing: "Provide realistic, data-driven analysis suitable for small to medium enterprises.\n" +
			"Return only valid JSON without any additional text or markdown formatting.",

		suggestionIntro:   `Based on the product "%s", suggest 3-5 related products or variations that might have good export potential.`,
		suggestionExample: `Return only a JSON array of strings, like: ["product 1", "product 2", "product 3"]`,
		suggestionFocus: []string{
			"Similar products with different materials or styles",
			"Complementary products",
			"Products that might appeal to the same markets",
			"Traditional Indonesian products that could be modernized",
		},
		suggestionClosing: "Return only valid JSON array without any additional text or markdown formatting.",

		insightIntro: `Provide specific market insights for exporting "%s" to %s.`,
		insightTopics: []string{
			"Current demand trends",
			"Key competitors",
			"Pricing strategies",
			"Marketing opportunities",
			"Potential challenges",
		},
		insightClosing: "Keep it concise but informative for Indonesian SMEs.",

		chatPersona: "You are UMKM Mate, an export consultant helping Indonesian small and medium enterprises " +
			"find and enter foreign markets. Answer the user's question below in English.",
		chatClosing: "Keep the answer practical and under 200 words. If the question is not about exporting, " +
			"politely steer the conversation back to export topics.",

		focusHeading:   "Focus on:",
		includeHeading: "Include:",
	},
	entity.LanguageIndonesian: {
		analysisIntro: `Analisis peluang ekspor untuk "%s" dan berikan wawasan detail dalam format JSON berikut:`,
		analysisFields: fieldHints{
			country:      "Nama Negara",
			flag:         "Emoji Bendera Negara",
			demand:       "Sangat Tinggi/Tinggi/Sedang/Rendah",
			growth:       "Persentase pertumbuhan seperti +15.2%",
			marketSize:   "Ukuran pasar seperti $2.1B",
			competition:  "Tinggi/Sedang/Rendah",
			barriers:     "Tinggi/Sedang/Rendah",
			reasoning:    "Penjelasan singkat untuk rekomendasi ini",
			period:       "Periode waktu seperti Q4 2024",
			change:       "Persentase perubahan seperti +12%",
			description:  "Deskripsi tren singkat",
			requirement1: "Persyaratan 1",
			requirement2: "Persyaratan 2",
			timeline:     "Waktu pemrosesan seperti 4-6 minggu",
			cost:         "Biaya perkiraan seperti $500-1,200",
			notes:        "Catatan tambahan tentang regulasi",
			insights:     "Wawasan pasar secara keseluruhan dan rekomendasi untuk produk ini",
		},
		analysisFocus: []string{
			"3 destinasi ekspor paling menjanjikan",
			"Tren pasar dan pola permintaan saat ini",
			"Persyaratan regulasi utama untuk setiap destinasi",
			"Wawasan praktis untuk UMKM Indonesia",
		},
		analysisClosing: "Berikan analisis yang realistis dan berbasis data yang cocok untuk usaha kecil dan menengah.\n" +
			"Kembalikan hanya JSON yang valid tanpa teks tambahan atau format markdown.",

		suggestionIntro:   `Berdasarkan produk "%s", sarankan 3-5 produk terkait atau variasi yang mungkin memiliki potensi ekspor yang baik.`,
		suggestionExample: `Kembalikan hanya array JSON string, seperti: ["produk 1", "produk 2", "produk 3"]`,
		suggestionFocus: []string{
			"Produk serupa dengan bahan atau gaya yang berbeda",
			"Produk komplementer",
			"Produk yang mungkin menarik untuk pasar yang sama",
			"Produk tradisional Indonesia yang bisa dimodernisasi",
		},
		suggestionClosing: "Kembalikan hanya array JSON yang valid tanpa teks tambahan atau format markdown.",

		insightIntro: `Berikan wawasan pasar spesifik untuk mengekspor "%s" ke %s.`,
		insightTopics: []string{
			"Tren permintaan saat ini",
			"Pesaing utama",
			"Strategi penetapan harga",
			"Peluang pemasaran",
			"Tantangan potensial",
		},
		insightClosing: "Buat ringkas namun informatif untuk UMKM Indonesia.",

		chatPersona: "Anda adalah UMKM Mate, konsultan ekspor yang membantu usaha mikro, kecil, dan menengah Indonesia " +
			"menemukan dan memasuki pasar luar negeri. Jawab pertanyaan pengguna di bawah ini dalam bahasa Indonesia.",
		chatClosing: "Berikan jawaban yang praktis dan kurang dari 200 kata. Jika pertanyaan tidak terkait ekspor, " +
			"arahkan percakapan kembali ke topik ekspor dengan sopan.",

		focusHeading:   "Fokus pada:",
		includeHeading: "Sertakan:",
	},
}

// templatesFor は言語に対応する文言を返します。未知の言語は英語になります。
func templatesFor(lang entity.Language) templateSet {
	if t, ok := templates[lang]; ok {
		return t
	}
	return templates[entity.LanguageEnglish]
}
