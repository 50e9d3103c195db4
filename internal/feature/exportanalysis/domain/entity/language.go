// Package entity はexportanalysisフィーチャーのドメインモデルを定義します。
package entity

import "strings"

// Language は応答言語を表します。
type Language string

const (
	// LanguageIndonesian はプライマリ言語（インドネシア語）です。
	LanguageIndonesian Language = "id"
	// LanguageEnglish はセカンダリ言語（英語）で、未指定時のデフォルトです。
	LanguageEnglish Language = "en"
)

// ParseLanguage は言語タグを解釈します。未知・空の値は英語として扱います。
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "id", "id-id", "in":
		return LanguageIndonesian
	default:
		return LanguageEnglish
	}
}

// IsIndonesian はインドネシア語かどうかを返します。
func (l Language) IsIndonesian() bool {
	return l == LanguageIndonesian
}
