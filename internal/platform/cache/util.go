package cache

import (
	"time"

	"umkm_backend/internal/shared/env"
)

const (
	// DefaultResetHour はキャッシュを切り替える時刻（時）です。
	DefaultResetHour = 8
	// DefaultTimezone はリセット時刻を解釈するタイムゾーンです。
	DefaultTimezone = "Asia/Jakarta"
)

// TimeUntilNextReset は now から次の hour 時（loc基準）までの期間を返します。
// 既にその時刻を過ぎている場合は翌日の同時刻までの期間です。
func TimeUntilNextReset(now time.Time, hour int, loc *time.Location) time.Duration {
	now = now.In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)

	// 今日のリセット時刻が既に過ぎている場合は明日を使用
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}

	return next.Sub(now)
}

// DailyResetTTL は呼び出し時点から次のリセット時刻までをTTLとして返す関数を生成します。
// タイムゾーンが読み込めない場合はUTCを使用します。
func DailyResetTTL(hour int, timezone string) func() time.Duration {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return func() time.Duration {
		return TimeUntilNextReset(time.Now(), hour, loc)
	}
}

// LoadResetTTL は CACHE_RESET_HOUR と CACHE_TIMEZONE からTTL関数を生成します。
func LoadResetTTL() func() time.Duration {
	hour := env.Int("CACHE_RESET_HOUR", DefaultResetHour)
	if hour < 0 || hour > 23 {
		hour = DefaultResetHour
	}
	return DailyResetTTL(hour, env.String("CACHE_TIMEZONE", DefaultTimezone))
}
