package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"umkm_backend/internal/feature/exportanalysis/usecase"
)

// ErrNotConfigured はAPIキーが未設定のままクライアントを生成しようとした場合に返ります。
var ErrNotConfigured = errors.New("gemini API key is not configured")

// classify はSDKのエラーをusecaseのセンチネルエラーに変換します。
// HTTPコードとステータスで判別し、400/403 のように曖昧な場合だけメッセージを参照します。
// 判別できないエラーはそのまま返します。
func classify(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.Code == http.StatusUnauthorized, apiErr.Status == "UNAUTHENTICATED":
		return fmt.Errorf("%w: %w", usecase.ErrInvalidAPIKey, err)
	case apiErr.Code == http.StatusTooManyRequests, apiErr.Status == "RESOURCE_EXHAUSTED":
		return fmt.Errorf("%w: %w", usecase.ErrQuotaExceeded, err)
	case apiErr.Code == http.StatusNotFound, apiErr.Status == "NOT_FOUND":
		return fmt.Errorf("%w: %w", usecase.ErrModelUnavailable, err)
	case apiErr.Code != http.StatusBadRequest && apiErr.Code != http.StatusForbidden:
		return err
	}

	// 400 INVALID_ARGUMENT / 403 PERMISSION_DENIED はメッセージで判別する。
	// ハードエラーになるキー無効は最後に判定する。
	msg := strings.ToLower(apiErr.Message)
	switch {
	case strings.Contains(msg, "quota"):
		return fmt.Errorf("%w: %w", usecase.ErrQuotaExceeded, err)
	case strings.Contains(msg, "models/") && (strings.Contains(msg, "not found") || strings.Contains(msg, "not supported")):
		return fmt.Errorf("%w: %w", usecase.ErrModelUnavailable, err)
	case isInvalidKeyMessage(msg):
		return fmt.Errorf("%w: %w", usecase.ErrInvalidAPIKey, err)
	}
	return err
}

func isInvalidKeyMessage(msg string) bool {
	if strings.Contains(msg, "api_key_invalid") {
		return true
	}
	if !strings.Contains(msg, "api key") {
		return false
	}
	for _, s := range []string{"not valid", "invalid", "expired", "revoked"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
