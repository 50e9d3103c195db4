package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"umkm_backend/internal/feature/querylog/domain/entity"
	"umkm_backend/internal/feature/querylog/usecase"
)

// mockQueryLogUsecase はQueryLogUsecaseインターフェースのモック実装です。
type mockQueryLogUsecase struct {
	ListRecentFunc func(ctx context.Context, limit int) ([]entity.Query, error)
	PopularFunc    func(ctx context.Context, limit int) ([]entity.ProductCount, error)
}

func (m *mockQueryLogUsecase) ListRecent(ctx context.Context, limit int) ([]entity.Query, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockQueryLogUsecase) Popular(ctx context.Context, limit int) ([]entity.ProductCount, error) {
	if m.PopularFunc != nil {
		return m.PopularFunc(ctx, limit)
	}
	return nil, nil
}

// TestNewQueryLogHandler はNewQueryLogHandlerコンストラクタが正しくインスタンスを生成することを検証します。
func TestNewQueryLogHandler(t *testing.T) {
	t.Parallel()

	h := NewQueryLogHandler(&mockQueryLogUsecase{})

	assert.NotNil(t, h, "handler should not be nil")
	assert.NotNil(t, h.uc, "usecase should not be nil")
}

func TestQueryLogHandler_ListRecent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		mockFunc       func(ctx context.Context, limit int) ([]entity.Query, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: returns queries",
			url:  "/v1/admin/queries?limit=1",
			mockFunc: func(ctx context.Context, limit int) ([]entity.Query, error) {
				assert.Equal(t, 1, limit)
				return []entity.Query{{RequestID: "r1", Product: "batik", Language: "id", Task: "analysis", Source: "model", CreatedAt: created}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"request_id":"r1","product":"batik","language":"id","task":"analysis","source":"model","created_at":"2025-05-01T09:00:00Z"}]`,
		},
		{
			name: "success: empty list",
			url:  "/v1/admin/queries",
			mockFunc: func(ctx context.Context, limit int) ([]entity.Query, error) {
				assert.Equal(t, 0, limit)
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "error: non-numeric limit",
			url:            "/v1/admin/queries?limit=ten",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"limit must be an integer"}`,
		},
		{
			name: "error: negative limit",
			url:  "/v1/admin/queries?limit=-1",
			mockFunc: func(ctx context.Context, limit int) ([]entity.Query, error) {
				return nil, usecase.ErrInvalidLimit
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error: database failure",
			url:  "/v1/admin/queries",
			mockFunc: func(ctx context.Context, limit int) ([]entity.Query, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewQueryLogHandler(&mockQueryLogUsecase{ListRecentFunc: tt.mockFunc})
			router := gin.New()
			router.GET("/v1/admin/queries", h.ListRecent)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestQueryLogHandler_Popular(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewQueryLogHandler(&mockQueryLogUsecase{PopularFunc: func(ctx context.Context, limit int) ([]entity.ProductCount, error) {
		return []entity.ProductCount{{Product: "batik", Count: 3}, {Product: "kopi", Count: 2}}, nil
	}})
	router := gin.New()
	router.GET("/v1/admin/queries/popular", h.Popular)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/queries/popular", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"product":"batik","count":3},{"product":"kopi","count":2}]`, w.Body.String())
}
