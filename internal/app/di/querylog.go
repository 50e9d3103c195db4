package di

import (
	"gorm.io/gorm"

	"umkm_backend/internal/feature/exportanalysis/adapters/querylog"
	"umkm_backend/internal/feature/exportanalysis/usecase"
	qladapters "umkm_backend/internal/feature/querylog/adapters"
	qlusecase "umkm_backend/internal/feature/querylog/usecase"
)

// NewQueryLog creates the query log usecase backed by db.
// If db is nil, it returns nil and queries are not recorded.
func NewQueryLog(db *gorm.DB) *qlusecase.QueryLogUsecase {
	if db == nil {
		return nil
	}
	return qlusecase.NewQueryLogUsecase(qladapters.NewQueryRepository(db))
}

// NewQueryRecorder adapts the query log to the recorder consumed by the export usecase.
// A nil query log yields a nil recorder interface, not a typed nil.
func NewQueryRecorder(ql *qlusecase.QueryLogUsecase) usecase.QueryRecorder {
	if ql == nil {
		return nil
	}
	return querylog.NewRecorder(ql)
}
