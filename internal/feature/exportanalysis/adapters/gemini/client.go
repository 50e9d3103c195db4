// Package gemini はGoogle Gemini APIを使用したテキスト生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"umkm_backend/internal/feature/exportanalysis/domain/entity"
	"umkm_backend/internal/feature/exportanalysis/prompt"
	"umkm_backend/internal/feature/exportanalysis/usecase"
	"umkm_backend/internal/shared/ratelimiter"
)

const jsonMIMEType = "application/json"

// GeminiGenerator はGoogle Gemini APIを使用してプロンプトから応答を生成します。
// 呼び出しは Config.RequestsPerMinute で制限されます。
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	limiter ratelimiter.Limiter
}

// GeminiGeneratorがGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator はAPIキー認証でGeminiGeneratorを生成します。
// キーが未設定またはプレースホルダーの場合は ErrNotConfigured を返します。
func NewGeminiGenerator(ctx context.Context, cfg Config, httpClient *http.Client) (*GeminiGenerator, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	cc := &genai.ClientConfig{
		APIKey:     strings.TrimSpace(cfg.APIKey),
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGenerator{
		client:  client,
		model:   model,
		limiter: ratelimiter.PerMinute(cfg.RequestsPerMinute),
	}, nil
}

// Model は使用するモデル名を返します。
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Probe は設定されたモデルが利用可能かを一度だけ確認するために使います。
func (g *GeminiGenerator) Probe(ctx context.Context) error {
	if _, err := g.client.Models.Get(ctx, g.model, nil); err != nil {
		return fmt.Errorf("gemini model probe failed for %q: %w", g.model, classify(err))
	}
	return nil
}

// Generate はプロンプトを送信し、応答テキストを返します。
// JSONを期待するタスクではレスポンスのMIMEタイプを application/json に指定します。
func (g *GeminiGenerator) Generate(ctx context.Context, task entity.TaskKind, p string) (string, error) {
	// 期限内に枠が空かない場合はクォータ超過と同じ扱い
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("gemini rate limit wait failed (task=%s): %w: %w", task, usecase.ErrQuotaExceeded, err)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p), generateConfig(task))
	if err != nil {
		return "", fmt.Errorf("gemini API request failed (task=%s): %w", task, classify(err))
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned no text (task=%s): %w", task, usecase.ErrEmptyResponse)
	}
	return text, nil
}

func generateConfig(task entity.TaskKind) *genai.GenerateContentConfig {
	if prompt.ExpectedShape(task) == prompt.ShapeProse {
		return nil
	}
	return &genai.GenerateContentConfig{ResponseMIMEType: jsonMIMEType}
}
