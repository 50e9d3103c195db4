package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"umkm_backend/internal/feature/exportanalysis/adapters/gemini"
)

func TestNewAI_DisabledWithoutKey(t *testing.T) {
	t.Parallel()

	ai := NewAI(context.Background(), gemini.Config{APIKey: "", Timeout: time.Second}, nil)

	assert.Nil(t, ai.Generator)
	assert.NotNil(t, ai.Cache)
	assert.Empty(t, ai.Model)
}

func TestNewAI_DisabledWhenProbeFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"API key not valid","status":"UNAUTHENTICATED"}}`))
	}))
	t.Cleanup(srv.Close)

	ai := NewAI(context.Background(), gemini.Config{APIKey: "bad-key", BaseURL: srv.URL, Timeout: time.Second}, nil)

	assert.Nil(t, ai.Generator)
}

func TestNewAI_EnabledWhenProbeSucceeds(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"models/gemini-2.0-flash"}`))
	}))
	t.Cleanup(srv.Close)

	ai := NewAI(context.Background(), gemini.Config{
		APIKey: "real-key", Model: "gemini-2.0-flash", BaseURL: srv.URL, Timeout: time.Second,
	}, nil)

	assert.NotNil(t, ai.Generator)
	assert.Same(t, ai.Cache, ai.Generator)
	assert.Equal(t, "gemini-2.0-flash", ai.Model)
}

func TestNewQueryRecorder_NilWithoutDB(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewQueryLog(nil))
	assert.Nil(t, NewQueryRecorder(nil))
}
