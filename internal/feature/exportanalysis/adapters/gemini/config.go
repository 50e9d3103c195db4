package gemini

import (
	"strings"
	"time"

	"umkm_backend/internal/shared/env"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.0-flash"
	// DefaultTimeout は1回の呼び出しのタイムアウトです。
	DefaultTimeout = 30 * time.Second
	// DefaultRequestsPerMinute は無料枠に合わせた毎分のリクエスト上限です。
	DefaultRequestsPerMinute = 15
)

// placeholderKeys はサンプルの .env に書かれている未設定扱いのキーです。
var placeholderKeys = map[string]struct{}{
	"your_gemini_api_key_here": {},
	"your_api_key_here":        {},
}

// Config はGeminiクライアントの設定です。
type Config struct {
	APIKey            string
	Model             string
	BaseURL           string // 空の場合はSDKのデフォルト
	Timeout           time.Duration
	RequestsPerMinute int
}

// LoadConfig は環境変数から設定を読み込みます。
func LoadConfig() Config {
	return Config{
		APIKey:            env.String("GEMINI_API_KEY", ""),
		Model:             env.String("GEMINI_MODEL", DefaultModel),
		BaseURL:           env.String("GEMINI_BASE_URL", ""),
		Timeout:           env.Duration("GEMINI_TIMEOUT", DefaultTimeout),
		RequestsPerMinute: env.Int("GEMINI_RPM", DefaultRequestsPerMinute),
	}
}

// Configured はAPIキーが実際に設定されているかを返します。
// 空・空白のみ・プレースホルダーのままの場合は false です。
func (c Config) Configured() bool {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		return false
	}
	_, placeholder := placeholderKeys[strings.ToLower(key)]
	return !placeholder
}
