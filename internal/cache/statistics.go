package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const statisticsKeyPrefix = "stats:"

// StatisticsKey 统计缓存键，parts 依次拼接
func StatisticsKey(name string, parts ...interface{}) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, strings.TrimSpace(name))
	for _, part := range parts {
		segments = append(segments, fmt.Sprint(part))
	}
	return statisticsKeyPrefix + strings.Join(segments, ":")
}

// GetStatistics 读取统计缓存
func GetStatistics(ctx context.Context, key string, dest interface{}) (bool, error) {
	return GetJSON(ctx, key, dest)
}

// SetStatistics 写入统计缓存
func SetStatistics(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, key, value, ttl)
}

// InvalidateStatistics 清空全部统计缓存
func InvalidateStatistics(ctx context.Context) (int64, error) {
	return DelByPrefix(ctx, statisticsKeyPrefix)
}
