// Package usecase はexportanalysisフィーチャーのビジネスロジックを実装します。
// モデル呼び出しの結果は常に構造化された結果に正規化され、
// 呼び出し元に返るエラーは ErrInvalidAPIKey のみです。
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"umkm_backend/internal/feature/exportanalysis/domain/entity"
	"umkm_backend/internal/feature/exportanalysis/normalizer"
	"umkm_backend/internal/feature/exportanalysis/prompt"
)

// ReportConcurrency はレポート生成時に同時に実行する市場インサイト取得の上限です。
const ReportConcurrency = 3

// Generator は生成モデルへの呼び出しを抽象化したインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Generator interface {
	// Generate はプロンプトを送信し、モデルの生テキストを返します。
	// 認証情報が拒否された場合は ErrInvalidAPIKey をラップして返します。
	Generate(ctx context.Context, task entity.TaskKind, prompt string) (string, error)
}

// QueryRecorder は完了した問い合わせのメタデータを記録します。記録の失敗は無視されます。
type QueryRecorder interface {
	RecordQuery(ctx context.Context, q RecordedQuery) error
}

// RecordedQuery は記録対象の問い合わせです。生成結果そのものは含みません。
type RecordedQuery struct {
	RequestID string
	Product   string
	Language  entity.Language
	Task      entity.TaskKind
	Source    entity.Source
}

// AnalysisResult は輸出分析の結果です。
type AnalysisResult struct {
	Analysis *entity.ExportAnalysis
	Source   entity.Source
}

// SuggestionResult は関連商品候補の結果です。
type SuggestionResult struct {
	Suggestions []string
	Source      entity.Source
}

// TextResult は市場インサイトやチャット応答など自由記述の結果です。
type TextResult struct {
	Text   string
	Source entity.Source
}

// ReportResult は分析と各推奨国の市場インサイトをまとめた結果です。
type ReportResult struct {
	Analysis       *entity.ExportAnalysis
	Source         entity.Source
	MarketInsights map[string]string
}

// ExportUsecase はプロンプト生成・モデル呼び出し・応答の正規化を行います。
type ExportUsecase struct {
	generator Generator
	recorder  QueryRecorder
	enabled   bool
}

// NewExportUsecase はExportUsecaseを生成します。
// generator が nil の場合はAI無効状態となり、すべての操作はフォールバックを返します。
// recorder は nil でも構いません。
func NewExportUsecase(generator Generator, recorder QueryRecorder) *ExportUsecase {
	return &ExportUsecase{
		generator: generator,
		recorder:  recorder,
		enabled:   generator != nil,
	}
}

// Enabled はモデルが利用可能かどうかを返します。値は生成時に確定します。
func (u *ExportUsecase) Enabled() bool {
	return u.enabled
}

// Analyze は商品の輸出機会分析を返します。
func (u *ExportUsecase) Analyze(ctx context.Context, req entity.AnalysisRequest) (*AnalysisResult, error) {
	res, err := u.analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	u.record(ctx, req.RequestID, req.Product, req.Language, entity.TaskAnalysis, res.Source)
	return res, nil
}

func (u *ExportUsecase) analyze(ctx context.Context, req entity.AnalysisRequest) (*AnalysisResult, error) {
	if !u.enabled {
		return &AnalysisResult{
			Analysis: normalizer.FallbackAnalysis(req.Product, req.Language),
			Source:   entity.SourceDisabled,
		}, nil
	}

	raw, err := u.call(ctx, entity.TaskAnalysis, prompt.BuildAnalysisPrompt(req.Product, req.Language))
	if err != nil {
		if errors.Is(err, ErrInvalidAPIKey) {
			return nil, err
		}
		return &AnalysisResult{
			Analysis: normalizer.FallbackAnalysis(req.Product, req.Language),
			Source:   entity.SourceFallback,
		}, nil
	}

	analysis, err := normalizer.DecodeAnalysis(raw)
	if err != nil {
		slog.Warn("analysis response rejected, using fallback", "product", req.Product, "error", err)
		return &AnalysisResult{
			Analysis: normalizer.FallbackAnalysis(req.Product, req.Language),
			Source:   entity.SourceFallback,
		}, nil
	}
	return &AnalysisResult{Analysis: analysis, Source: entity.SourceModel}, nil
}

// Suggest は関連商品の候補を最大5件返します。
func (u *ExportUsecase) Suggest(ctx context.Context, req entity.AnalysisRequest) (*SuggestionResult, error) {
	res, err := u.suggest(ctx, req)
	if err != nil {
		return nil, err
	}
	u.record(ctx, req.RequestID, req.Product, req.Language, entity.TaskSuggestions, res.Source)
	return res, nil
}

func (u *ExportUsecase) suggest(ctx context.Context, req entity.AnalysisRequest) (*SuggestionResult, error) {
	if !u.enabled {
		return &SuggestionResult{Suggestions: normalizer.FallbackSuggestions(req.Product), Source: entity.SourceDisabled}, nil
	}

	raw, err := u.call(ctx, entity.TaskSuggestions, prompt.BuildSuggestionPrompt(req.Product, req.Language))
	if err != nil {
		if errors.Is(err, ErrInvalidAPIKey) {
			return nil, err
		}
		return &SuggestionResult{Suggestions: normalizer.FallbackSuggestions(req.Product), Source: entity.SourceFallback}, nil
	}

	suggestions, err := normalizer.DecodeSuggestions(raw)
	if err != nil {
		slog.Warn("suggestion response rejected, using fallback", "product", req.Product, "error", err)
		return &SuggestionResult{Suggestions: normalizer.FallbackSuggestions(req.Product), Source: entity.SourceFallback}, nil
	}
	return &SuggestionResult{Suggestions: suggestions, Source: entity.SourceModel}, nil
}

// MarketInsight は特定の国に向けた市場インサイトを返します。
// 応答は自由記述なので、空でなければ加工せずにそのまま返します。
func (u *ExportUsecase) MarketInsight(ctx context.Context, req entity.AnalysisRequest, country string) (*TextResult, error) {
	res, err := u.marketInsight(ctx, req, country)
	if err != nil {
		return nil, err
	}
	u.record(ctx, req.RequestID, req.Product, req.Language, entity.TaskMarketInsight, res.Source)
	return res, nil
}

func (u *ExportUsecase) marketInsight(ctx context.Context, req entity.AnalysisRequest, country string) (*TextResult, error) {
	fallback := func(src entity.Source) *TextResult {
		return &TextResult{Text: normalizer.FallbackMarketInsight(req.Product, country, req.Language), Source: src}
	}
	if !u.enabled {
		return fallback(entity.SourceDisabled), nil
	}

	raw, err := u.call(ctx, entity.TaskMarketInsight, prompt.BuildMarketInsightPrompt(req.Product, country, req.Language))
	if err != nil {
		if errors.Is(err, ErrInvalidAPIKey) {
			return nil, err
		}
		return fallback(entity.SourceFallback), nil
	}
	if strings.TrimSpace(raw) == "" {
		return fallback(entity.SourceFallback), nil
	}
	return &TextResult{Text: raw, Source: entity.SourceModel}, nil
}

// Chat は輸出コンサルタントとしての応答を返します。
func (u *ExportUsecase) Chat(ctx context.Context, req entity.ChatRequest) (*TextResult, error) {
	res, err := u.chat(ctx, req)
	if err != nil {
		return nil, err
	}
	// メッセージ本文は記録しない
	u.record(ctx, req.RequestID, "", req.Language, entity.TaskChat, res.Source)
	return res, nil
}

func (u *ExportUsecase) chat(ctx context.Context, req entity.ChatRequest) (*TextResult, error) {
	if !u.enabled {
		return &TextResult{Text: normalizer.FallbackChatReply(req.Language), Source: entity.SourceDisabled}, nil
	}

	raw, err := u.call(ctx, entity.TaskChat, prompt.BuildChatPrompt(req.Message, req.Language))
	if err != nil {
		if errors.Is(err, ErrInvalidAPIKey) {
			return nil, err
		}
		return &TextResult{Text: normalizer.FallbackChatReply(req.Language), Source: entity.SourceFallback}, nil
	}
	if strings.TrimSpace(raw) == "" {
		return &TextResult{Text: normalizer.FallbackChatReply(req.Language), Source: entity.SourceFallback}, nil
	}
	return &TextResult{Text: raw, Source: entity.SourceModel}, nil
}

// Report は分析を行い、推奨された各国の市場インサイトを並行して取得します。
// いずれかの呼び出しで ErrInvalidAPIKey が返った場合はレポート全体を中断します。
func (u *ExportUsecase) Report(ctx context.Context, req entity.AnalysisRequest) (*ReportResult, error) {
	analysis, err := u.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	countries := uniqueCountries(analysis.Analysis.Destinations)
	insights := make([]string, len(countries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ReportConcurrency)
	for i, country := range countries {
		g.Go(func() error {
			res, err := u.marketInsight(gctx, req, country)
			if err != nil {
				return err
			}
			// gctx は他の国の失敗で取り消されるため、記録は呼び出し元の ctx で行う
			u.record(ctx, req.RequestID, req.Product, req.Language, entity.TaskMarketInsight, res.Source)
			insights[i] = res.Text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &ReportResult{
		Analysis:       analysis.Analysis,
		Source:         analysis.Source,
		MarketInsights: make(map[string]string, len(countries)),
	}
	for i, country := range countries {
		out.MarketInsights[country] = insights[i]
	}
	return out, nil
}

// call はモデルを呼び出し、ソフトエラーをログに残します。
func (u *ExportUsecase) call(ctx context.Context, task entity.TaskKind, p string) (string, error) {
	raw, err := u.generator.Generate(ctx, task, p)
	if err == nil {
		return raw, nil
	}
	if errors.Is(err, ErrInvalidAPIKey) {
		slog.Error("model rejected API key", "task", task, "error", err)
		return "", err
	}
	slog.Warn("model call failed, using fallback", "task", task, "error", err)
	return "", err
}

func (u *ExportUsecase) record(ctx context.Context, requestID, product string, lang entity.Language, task entity.TaskKind, src entity.Source) {
	if u.recorder == nil {
		return
	}
	q := RecordedQuery{RequestID: requestID, Product: product, Language: lang, Task: task, Source: src}
	if err := u.recorder.RecordQuery(ctx, q); err != nil {
		slog.Warn("failed to record query", "task", task, "error", err)
	}
}

func uniqueCountries(destinations []entity.Destination) []string {
	seen := make(map[string]struct{}, len(destinations))
	out := make([]string, 0, len(destinations))
	for _, d := range destinations {
		if _, ok := seen[d.Country]; ok {
			continue
		}
		seen[d.Country] = struct{}{}
		out = append(out, d.Country)
	}
	return out
}
