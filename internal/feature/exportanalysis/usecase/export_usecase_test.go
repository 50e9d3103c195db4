package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"umkm_backend/internal/feature/exportanalysis/domain/entity"
	"umkm_backend/internal/feature/exportanalysis/normalizer"
	"umkm_backend/internal/feature/exportanalysis/usecase"
)

// mockGenerator はGeneratorインターフェースのモック実装です。
type mockGenerator struct {
	GenerateFunc  func(ctx context.Context, task entity.TaskKind, prompt string) (string, error)
	GenerateCalls atomic.Int32
}

func (m *mockGenerator) Generate(ctx context.Context, task entity.TaskKind, prompt string) (string, error) {
	m.GenerateCalls.Add(1)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, task, prompt)
	}
	return "", errors.New("GenerateFunc is not implemented")
}

// mockRecorder はQueryRecorderインターフェースのモック実装です。
type mockRecorder struct {
	mu      sync.Mutex
	Queries []usecase.RecordedQuery
	CtxErrs []error // 記録時点の ctx.Err()
	Err     error
}

func (m *mockRecorder) RecordQuery(ctx context.Context, q usecase.RecordedQuery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, q)
	m.CtxErrs = append(m.CtxErrs, ctx.Err())
	return m.Err
}

const modelAnalysis = "```json\n" + `{
  "destinations": [
    {"country": "Singapore", "flag": "🇸🇬", "demand": "High", "growth": "+9.1%", "marketSize": "$0.4B",
     "competition": "Medium", "barriers": "Low", "reasoning": "Close trade partner"},
    {"country": "Netherlands", "flag": "🇳🇱", "demand": "Medium", "growth": "+6.0%", "marketSize": "$0.7B",
     "competition": "High", "barriers": "Medium", "reasoning": "Gateway to the EU"}
  ],
  "trends": [{"period": "Q4 2024", "value": 64, "change": "+3%", "description": "Stable"}],
  "regulations": [{"country": "Singapore", "requirements": ["SFA Permit"], "timeline": "2 weeks", "cost": "$100", "notes": ""}],
  "insights": "Start with Singapore."
}` + "\n```"

func staticGenerator(raw string, err error) *mockGenerator {
	return &mockGenerator{GenerateFunc: func(context.Context, entity.TaskKind, string) (string, error) {
		return raw, err
	}}
}

func TestExportUsecase_Analyze(t *testing.T) {
	ctx := context.Background()
	req := entity.AnalysisRequest{RequestID: "req-1", Product: "keripik tempe", Language: entity.LanguageIndonesian}

	testCases := []struct {
		name        string
		generator   usecase.Generator
		wantSource  entity.Source
		wantCountry string
		wantErr     error
	}{
		{
			name:        "success: model JSON in fenced block",
			generator:   staticGenerator(modelAnalysis, nil),
			wantSource:  entity.SourceModel,
			wantCountry: "Singapore",
		},
		{
			name:        "success: disabled returns fallback",
			generator:   nil,
			wantSource:  entity.SourceDisabled,
			wantCountry: "United States",
		},
		{
			name:        "success: prose reply falls back",
			generator:   staticGenerator("Sorry, I can't do that right now.", nil),
			wantSource:  entity.SourceFallback,
			wantCountry: "United States",
		},
		{
			name:        "success: quota exceeded falls back",
			generator:   staticGenerator("", fmt.Errorf("gemini: %w", usecase.ErrQuotaExceeded)),
			wantSource:  entity.SourceFallback,
			wantCountry: "United States",
		},
		{
			name:        "success: model unavailable falls back",
			generator:   staticGenerator("", usecase.ErrModelUnavailable),
			wantSource:  entity.SourceFallback,
			wantCountry: "United States",
		},
		{
			name:        "success: transport error falls back",
			generator:   staticGenerator("", errors.New("dial tcp: connection refused")),
			wantSource:  entity.SourceFallback,
			wantCountry: "United States",
		},
		{
			name:      "error: invalid api key is returned",
			generator: staticGenerator("", fmt.Errorf("gemini: %w", usecase.ErrInvalidAPIKey)),
			wantErr:   usecase.ErrInvalidAPIKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := usecase.NewExportUsecase(tc.generator, nil)

			res, err := uc.Analyze(ctx, req)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantSource, res.Source)
			require.NotEmpty(t, res.Analysis.Destinations)
			assert.Equal(t, tc.wantCountry, res.Analysis.Destinations[0].Country)
			if tc.wantSource != entity.SourceModel {
				assert.Len(t, res.Analysis.Destinations, 3)
				assert.Len(t, res.Analysis.Trends, 3)
				assert.Len(t, res.Analysis.Regulations, 2)
				assert.Contains(t, res.Analysis.Insights, req.Product)
			}
		})
	}
}

// 無効時のフォールバックはリクエストのたびに同じ結果になる
func TestExportUsecase_Analyze_DisabledIsDeterministic(t *testing.T) {
	uc := usecase.NewExportUsecase(nil, nil)
	req := entity.AnalysisRequest{Product: "batik", Language: entity.LanguageEnglish}

	a, err := uc.Analyze(context.Background(), req)
	require.NoError(t, err)
	b, err := uc.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.False(t, uc.Enabled())
}

func TestExportUsecase_Analyze_SendsAnalysisPrompt(t *testing.T) {
	gen := &mockGenerator{GenerateFunc: func(_ context.Context, task entity.TaskKind, p string) (string, error) {
		assert.Equal(t, entity.TaskAnalysis, task)
		assert.Contains(t, p, `"batik"`)
		assert.Contains(t, p, `"destinations"`)
		return modelAnalysis, nil
	}}
	uc := usecase.NewExportUsecase(gen, nil)

	_, err := uc.Analyze(context.Background(), entity.AnalysisRequest{Product: "batik", Language: entity.LanguageEnglish})
	require.NoError(t, err)
	assert.Equal(t, int32(1), gen.GenerateCalls.Load())
}

func TestExportUsecase_Suggest(t *testing.T) {
	ctx := context.Background()
	req := entity.AnalysisRequest{Product: "batik", Language: entity.LanguageEnglish}
	fallback := []string{"batik premium", "batik organic", "batik handmade", "batik traditional", "batik modern"}

	testCases := []struct {
		name       string
		generator  usecase.Generator
		want       []string
		wantSource entity.Source
		wantErr    error
	}{
		{
			name:       "success: model array",
			generator:  staticGenerator(`["batik tulis", "batik cap", "sarung batik"]`, nil),
			want:       []string{"batik tulis", "batik cap", "sarung batik"},
			wantSource: entity.SourceModel,
		},
		{
			name:       "success: model array is capped",
			generator:  staticGenerator("```\n[\"a\",\"b\",\"c\",\"d\",\"e\",\"f\"]\n```", nil),
			want:       []string{"a", "b", "c", "d", "e"},
			wantSource: entity.SourceModel,
		},
		{
			name:       "success: disabled",
			generator:  nil,
			want:       fallback,
			wantSource: entity.SourceDisabled,
		},
		{
			name:       "success: no array in reply",
			generator:  staticGenerator("batik tulis, batik cap", nil),
			want:       fallback,
			wantSource: entity.SourceFallback,
		},
		{
			name:       "success: quota exceeded",
			generator:  staticGenerator("", usecase.ErrQuotaExceeded),
			want:       fallback,
			wantSource: entity.SourceFallback,
		},
		{
			name:      "error: invalid api key",
			generator: staticGenerator("", usecase.ErrInvalidAPIKey),
			wantErr:   usecase.ErrInvalidAPIKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := usecase.NewExportUsecase(tc.generator, nil)

			res, err := uc.Suggest(ctx, req)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Suggestions)
			assert.Equal(t, tc.wantSource, res.Source)
		})
	}
}

func TestExportUsecase_MarketInsight(t *testing.T) {
	ctx := context.Background()
	req := entity.AnalysisRequest{Product: "coffee", Language: entity.LanguageEnglish}
	fallback := normalizer.FallbackMarketInsight("coffee", "Germany", entity.LanguageEnglish)

	testCases := []struct {
		name       string
		generator  usecase.Generator
		want       string
		wantSource entity.Source
		wantErr    error
	}{
		{
			name:       "success: prose is returned verbatim",
			generator:  staticGenerator("Demand for specialty coffee is rising. {not json", nil),
			want:       "Demand for specialty coffee is rising. {not json",
			wantSource: entity.SourceModel,
		},
		{
			name:       "success: empty reply falls back",
			generator:  staticGenerator("  \n", nil),
			want:       fallback,
			wantSource: entity.SourceFallback,
		},
		{
			name:       "success: disabled",
			generator:  nil,
			want:       fallback,
			wantSource: entity.SourceDisabled,
		},
		{
			name:       "success: model unavailable",
			generator:  staticGenerator("", usecase.ErrModelUnavailable),
			want:       fallback,
			wantSource: entity.SourceFallback,
		},
		{
			name:      "error: invalid api key",
			generator: staticGenerator("", usecase.ErrInvalidAPIKey),
			wantErr:   usecase.ErrInvalidAPIKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := usecase.NewExportUsecase(tc.generator, nil)

			res, err := uc.MarketInsight(ctx, req, "Germany")

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Text)
			assert.Equal(t, tc.wantSource, res.Source)
		})
	}
}

func TestExportUsecase_Chat(t *testing.T) {
	ctx := context.Background()

	t.Run("success: reply from model", func(t *testing.T) {
		gen := &mockGenerator{GenerateFunc: func(_ context.Context, task entity.TaskKind, p string) (string, error) {
			assert.Equal(t, entity.TaskChat, task)
			assert.Contains(t, p, "How do I export to Japan?")
			return "Start with JAS certification.", nil
		}}
		rec := &mockRecorder{}
		uc := usecase.NewExportUsecase(gen, rec)

		res, err := uc.Chat(ctx, entity.ChatRequest{RequestID: "c1", Message: "How do I export to Japan?", Language: entity.LanguageEnglish})

		require.NoError(t, err)
		assert.Equal(t, "Start with JAS certification.", res.Text)
		require.Len(t, rec.Queries, 1)
		assert.Empty(t, rec.Queries[0].Product)
		assert.Equal(t, entity.TaskChat, rec.Queries[0].Task)
	})

	t.Run("success: failure falls back per language", func(t *testing.T) {
		uc := usecase.NewExportUsecase(staticGenerator("", errors.New("timeout")), nil)

		res, err := uc.Chat(ctx, entity.ChatRequest{Message: "halo", Language: entity.LanguageIndonesian})

		require.NoError(t, err)
		assert.Equal(t, normalizer.FallbackChatReply(entity.LanguageIndonesian), res.Text)
		assert.Equal(t, entity.SourceFallback, res.Source)
	})

	t.Run("error: invalid api key", func(t *testing.T) {
		uc := usecase.NewExportUsecase(staticGenerator("", usecase.ErrInvalidAPIKey), nil)

		_, err := uc.Chat(ctx, entity.ChatRequest{Message: "halo"})
		require.ErrorIs(t, err, usecase.ErrInvalidAPIKey)
	})
}

func TestExportUsecase_RecordsQueries(t *testing.T) {
	rec := &mockRecorder{Err: errors.New("db down")}
	uc := usecase.NewExportUsecase(nil, rec)

	_, err := uc.Analyze(context.Background(), entity.AnalysisRequest{RequestID: "r1", Product: "batik", Language: entity.LanguageEnglish})

	// 記録の失敗は結果に影響しない
	require.NoError(t, err)
	require.Len(t, rec.Queries, 1)
	assert.Equal(t, usecase.RecordedQuery{
		RequestID: "r1",
		Product:   "batik",
		Language:  entity.LanguageEnglish,
		Task:      entity.TaskAnalysis,
		Source:    entity.SourceDisabled,
	}, rec.Queries[0])
}

func TestExportUsecase_Report(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	req := entity.AnalysisRequest{Product: "coffee", Language: entity.LanguageEnglish}

	t.Run("success: insights for every destination", func(t *testing.T) {
		gen := &mockGenerator{GenerateFunc: func(_ context.Context, task entity.TaskKind, p string) (string, error) {
			if task == entity.TaskAnalysis {
				return modelAnalysis, nil
			}
			for _, c := range []string{"Singapore", "Netherlands"} {
				if strings.Contains(p, c) {
					return "insight for " + c, nil
				}
			}
			return "", errors.New("unexpected prompt")
		}}
		uc := usecase.NewExportUsecase(gen, nil)

		res, err := uc.Report(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, entity.SourceModel, res.Source)
		assert.Equal(t, map[string]string{
			"Singapore":   "insight for Singapore",
			"Netherlands": "insight for Netherlands",
		}, res.MarketInsights)
		assert.Equal(t, int32(3), gen.GenerateCalls.Load())
	})

	t.Run("success: disabled report uses fallback for all parts", func(t *testing.T) {
		uc := usecase.NewExportUsecase(nil, nil)

		res, err := uc.Report(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, entity.SourceDisabled, res.Source)
		assert.Len(t, res.MarketInsights, 3)
		assert.Equal(t,
			normalizer.FallbackMarketInsight("coffee", "Japan", entity.LanguageEnglish),
			res.MarketInsights["Japan"])
	})

	t.Run("error: invalid api key in one branch aborts", func(t *testing.T) {
		gen := &mockGenerator{GenerateFunc: func(_ context.Context, task entity.TaskKind, p string) (string, error) {
			if task == entity.TaskAnalysis {
				return modelAnalysis, nil
			}
			if strings.Contains(p, "Netherlands") {
				return "", usecase.ErrInvalidAPIKey
			}
			return "ok", nil
		}}
		uc := usecase.NewExportUsecase(gen, nil)

		res, err := uc.Report(ctx, req)

		require.ErrorIs(t, err, usecase.ErrInvalidAPIKey)
		assert.Nil(t, res)
	})

	t.Run("success: every part is recorded", func(t *testing.T) {
		gen := &mockGenerator{GenerateFunc: func(_ context.Context, task entity.TaskKind, p string) (string, error) {
			if task == entity.TaskAnalysis {
				return modelAnalysis, nil
			}
			return "insight", nil
		}}
		rec := &mockRecorder{}
		uc := usecase.NewExportUsecase(gen, rec)

		_, err := uc.Report(ctx, entity.AnalysisRequest{RequestID: "r1", Product: "coffee", Language: entity.LanguageEnglish})

		require.NoError(t, err)
		require.Len(t, rec.Queries, 3)
		tasks := map[entity.TaskKind]int{}
		for _, q := range rec.Queries {
			assert.Equal(t, "r1", q.RequestID)
			tasks[q.Task]++
		}
		assert.Equal(t, map[entity.TaskKind]int{entity.TaskAnalysis: 1, entity.TaskMarketInsight: 2}, tasks)
	})

	// 他の国の失敗でグループが取り消されても、完了した国の記録は呼び出し元の ctx で行われる
	t.Run("success: insights finished after abort are recorded with the caller context", func(t *testing.T) {
		gen := &mockGenerator{GenerateFunc: func(gctx context.Context, task entity.TaskKind, p string) (string, error) {
			switch {
			case task == entity.TaskAnalysis:
				return modelAnalysis, nil
			case strings.Contains(p, "Netherlands"):
				return "", usecase.ErrInvalidAPIKey
			default:
				<-gctx.Done()
				return "", gctx.Err()
			}
		}}
		rec := &mockRecorder{}
		uc := usecase.NewExportUsecase(gen, rec)

		_, err := uc.Report(ctx, req)

		require.ErrorIs(t, err, usecase.ErrInvalidAPIKey)
		require.Len(t, rec.Queries, 2)
		for i, q := range rec.Queries {
			assert.NoError(t, rec.CtxErrs[i], "task %s recorded with a cancelled context", q.Task)
		}
		assert.Equal(t, entity.TaskMarketInsight, rec.Queries[1].Task)
		assert.Equal(t, entity.SourceFallback, rec.Queries[1].Source)
	})
}

// 並行呼び出しは互いに干渉せず、それぞれの入力に対応した結果を返す
func TestExportUsecase_ConcurrentSuggest(t *testing.T) {
	gen := &mockGenerator{GenerateFunc: func(_ context.Context, _ entity.TaskKind, p string) (string, error) {
		if strings.Contains(p, `"ba"`) {
			return `["ba 1"]`, nil
		}
		return `["b 1"]`, nil
	}}
	uc := usecase.NewExportUsecase(gen, nil)

	var wg sync.WaitGroup
	results := make([][]string, 2)
	for i, product := range []string{"b", "ba"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := uc.Suggest(context.Background(), entity.AnalysisRequest{Product: product, Language: entity.LanguageEnglish})
			assert.NoError(t, err)
			results[i] = res.Suggestions
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"b 1"}, results[0])
	assert.Equal(t, []string{"ba 1"}, results[1])
}
