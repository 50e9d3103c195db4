package usecase

import (
	"errors"

	"umkm_backend/internal/feature/exportanalysis/normalizer"
)

var (
	// ErrInvalidAPIKey は認証情報が拒否されたことを示します。呼び出し元に返る唯一のエラーです。
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrQuotaExceeded はレート制限またはクォータ超過です。フォールバックで吸収されます。
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrModelUnavailable は指定モデルが存在しない、または利用できないことを示します。
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrMalformedResponse はモデル応答から構造化データを復元できなかったことを示します。
	ErrMalformedResponse = normalizer.ErrMalformedResponse
	// ErrEmptyResponse はモデルが空の応答を返したことを示します。
	ErrEmptyResponse = errors.New("empty model response")
)
