// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package video

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/leminhduc/vidora/internal/platform/constants"
)

// RedisViewCounter implements ViewCounter on a Redis INCR counter per video.
//
// Counters are best-effort: a lost increment under Redis failover is
// acceptable, view counts are not billing data.
type RedisViewCounter struct {
	client *redis.Client
}

func NewViewCounter(client *redis.Client) *RedisViewCounter {
	return &RedisViewCounter{client: client}
}

func viewKey(videoID string) string {
	return constants.RedisPrefixVideoViews + videoID
}

func (counter *RedisViewCounter) Increment(context context.Context, videoID string) (int64, error) {
	total, err := counter.client.Incr(context, viewKey(videoID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_view_counter_incr_failed: %w", err)
	}
	return total, nil
}

func (counter *RedisViewCounter) Get(context context.Context, videoIDs ...string) (map[string]int64, error) {
	totals := make(map[string]int64, len(videoIDs))
	if len(videoIDs) == 0 {
		return totals, nil
	}

	keys := make([]string, len(videoIDs))
	for i, id := range videoIDs {
		keys[i] = viewKey(id)
	}

	values, err := counter.client.MGet(context, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_view_counter_mget_failed: %w", err)
	}

	for i, value := range values {
		if value == nil {
			totals[videoIDs[i]] = 0
			continue
		}
		raw, ok := value.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		totals[videoIDs[i]] = n
	}

	return totals, nil
}
