// Package ratelimiter は外部API呼び出しの頻度を制限します。
package ratelimiter

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type Limiter interface {
	// Wait は次の呼び出しが許可されるまで待機します。
	// ctx がキャンセルされた場合、または期限内に許可されない場合はエラーを返します。
	Wait(ctx context.Context) error
}

// RateLimiter は、一定期間あたりの呼び出し回数を制限します。
// 複数のゴルーチンから同時に使用できます。
type RateLimiter struct {
	limiter *rate.Limiter
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter は interval あたり limit 回までの呼び出しを許可するRateLimiterを生成します。
// バースト数は limit と同じで、トークンは interval/limit ごとに補充されます。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	every := rate.Every(interval / time.Duration(limit))
	return &RateLimiter{limiter: rate.NewLimiter(every, limit)}
}

// PerMinute は1分あたり n 回までの呼び出しを許可するRateLimiterを生成します。
// n が0以下の場合は制限しません。
func PerMinute(n int) *RateLimiter {
	return NewRateLimiter(n, time.Minute)
}

// Wait は次の呼び出しが許可されるまで待機します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}
