// Package adapters はquerylogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"umkm_backend/internal/feature/querylog/domain/entity"
	"umkm_backend/internal/feature/querylog/usecase"
)

// queryGorm はQueryRepositoryインターフェースのGORM実装です。PostgreSQLとSQLiteの両方で動作します。
type queryGorm struct {
	db *gorm.DB
}

var _ usecase.QueryRepository = (*queryGorm)(nil)

// NewQueryRepository は指定されたDB接続でqueryGormリポジトリの新しいインスタンスを生成します。
func NewQueryRepository(db *gorm.DB) *queryGorm {
	return &queryGorm{db: db}
}

// Create は問い合わせを1件保存します。
func (r *queryGorm) Create(ctx context.Context, q *entity.Query) error {
	return r.db.WithContext(ctx).Create(q).Error
}

// ListRecent は新しい順に最大limit件を返します。
func (r *queryGorm) ListRecent(ctx context.Context, limit int) ([]entity.Query, error) {
	var queries []entity.Query
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&queries).Error; err != nil {
		return nil, err
	}
	return queries, nil
}

// CountByProduct は商品ごとの件数を多い順に返します。商品名が空の行は除外します。
func (r *queryGorm) CountByProduct(ctx context.Context, limit int) ([]entity.ProductCount, error) {
	var counts []entity.ProductCount
	if err := r.db.WithContext(ctx).
		Model(&entity.Query{}).
		Select("product, COUNT(*) AS count").
		Where("product <> ?", "").
		Group("product").
		Order("count DESC").
		Order("product ASC").
		Limit(limit).
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// DeleteBefore はtより前に作成された行を削除し、削除件数を返します。
func (r *queryGorm) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", t).
		Delete(&entity.Query{})
	return res.RowsAffected, res.Error
}
