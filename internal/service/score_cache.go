package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Score responses are cached per product and recomputed on demand; every
// mutation that can change a score (market upsert, new simulation, product
// update/delete) drops the key. The ranking list shares the same lifecycle.
const (
	scoreCacheTTL   = 10 * time.Minute
	rankingCacheKey = "scores:ranking"
)

func scoreCacheKey(productID uint) string {
	return fmt.Sprintf("score:%d", productID)
}

// invalidateScoreCache is best-effort: a cache error never fails the write
// that triggered it. rdb may be nil in unit tests.
func invalidateScoreCache(ctx context.Context, rdb *redis.Client, productID uint) {
	if rdb == nil {
		return
	}
	_ = rdb.Del(ctx, scoreCacheKey(productID), rankingCacheKey).Err()
}
