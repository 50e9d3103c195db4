// Package querylog はexportanalysisの問い合わせをquerylogフィーチャーに記録するアダプターです。
package querylog

import (
	"context"

	"umkm_backend/internal/feature/exportanalysis/usecase"
	qlentity "umkm_backend/internal/feature/querylog/domain/entity"
)

// QueryStore は問い合わせを保存するインターフェースです。
type QueryStore interface {
	Record(ctx context.Context, q qlentity.Query) error
}

// Recorder はQueryRecorderインターフェースの実装です。
type Recorder struct {
	store QueryStore
}

var _ usecase.QueryRecorder = (*Recorder)(nil)

// NewRecorder はRecorderを生成します。
func NewRecorder(store QueryStore) *Recorder {
	return &Recorder{store: store}
}

// RecordQuery は問い合わせのメタデータを保存します。
func (r *Recorder) RecordQuery(ctx context.Context, q usecase.RecordedQuery) error {
	return r.store.Record(ctx, qlentity.Query{
		RequestID: q.RequestID,
		Product:   q.Product,
		Language:  string(q.Language),
		Task:      string(q.Task),
		Source:    string(q.Source),
	})
}
