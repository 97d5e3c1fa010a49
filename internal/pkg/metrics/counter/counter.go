package counter

import (
	"context"
	"strconv"

	"github.com/blogram/blogram/internal/pkg/cache"
)

const postViewsKey = "post:counters:views"

// AddPostView increments the view counter for a post in Redis. Counters are
// display-only and never written back to the relational store.
func AddPostView(postID uint) error {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(postID), 10)
	return cache.GetClient().HIncrBy(ctx, postViewsKey, field, 1).Err()
}

// GetPostViews returns the current view counter for a post, 0 when unset
// or when the cache is unreachable.
func GetPostViews(postID uint) int64 {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(postID), 10)
	val, err := cache.GetClient().HGet(ctx, postViewsKey, field).Int64()
	if err != nil {
		return 0
	}
	return val
}
