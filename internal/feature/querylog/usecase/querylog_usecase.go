// Package usecase implements the business logic for the query log.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"umkm_backend/internal/feature/querylog/domain/entity"
)

const (
	// DefaultLimit is used when the caller does not specify a limit.
	DefaultLimit = 20
	// MaxLimit caps list sizes.
	MaxLimit = 100
	// DefaultRetention is how long queries are kept before pruning.
	DefaultRetention = 30 * 24 * time.Hour
)

// ErrInvalidLimit is returned for negative limits.
var ErrInvalidLimit = errors.New("limit must not be negative")

// QueryRepository abstracts the persistence layer for the query log.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QueryRepository interface {
	Create(ctx context.Context, q *entity.Query) error
	ListRecent(ctx context.Context, limit int) ([]entity.Query, error)
	CountByProduct(ctx context.Context, limit int) ([]entity.ProductCount, error)
	DeleteBefore(ctx context.Context, t time.Time) (int64, error)
}

// QueryLogUsecase provides business logic for the query log.
type QueryLogUsecase struct {
	repo QueryRepository
	now  func() time.Time
}

// NewQueryLogUsecase creates a new QueryLogUsecase with the given repository.
func NewQueryLogUsecase(r QueryRepository) *QueryLogUsecase {
	return &QueryLogUsecase{repo: r, now: time.Now}
}

// Record stores a query. Products are trimmed and lower-cased so popularity
// counts are not split by capitalisation.
func (u *QueryLogUsecase) Record(ctx context.Context, q entity.Query) error {
	q.ID = 0
	q.Product = strings.ToLower(strings.TrimSpace(q.Product))
	if err := u.repo.Create(ctx, &q); err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}
	return nil
}

// ListRecent returns the newest queries first.
func (u *QueryLogUsecase) ListRecent(ctx context.Context, limit int) ([]entity.Query, error) {
	n, err := clampLimit(limit)
	if err != nil {
		return nil, err
	}
	return u.repo.ListRecent(ctx, n)
}

// Popular returns the most queried products, excluding queries without a product (chat).
func (u *QueryLogUsecase) Popular(ctx context.Context, limit int) ([]entity.ProductCount, error) {
	n, err := clampLimit(limit)
	if err != nil {
		return nil, err
	}
	return u.repo.CountByProduct(ctx, n)
}

// Prune deletes queries older than retention and returns the number of deleted rows.
func (u *QueryLogUsecase) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	n, err := u.repo.DeleteBefore(ctx, u.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("failed to prune query log: %w", err)
	}
	return n, nil
}

func clampLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, ErrInvalidLimit
	case limit == 0:
		return DefaultLimit, nil
	case limit > MaxLimit:
		return MaxLimit, nil
	}
	return limit, nil
}
