package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/erprakash26/karyamate/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "task:list:"

// TaskCache caches per-user task list results in Redis, keyed by user and
// status filter. Invalidated as a whole on every write for that user.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

func listKey(userID int64, filter string) string {
	return keyPrefix + strconv.FormatInt(userID, 10) + ":" + filter
}

// GetList returns the cached list for (userID, filter) or nil on miss.
func (c *TaskCache) GetList(ctx context.Context, userID int64, filter string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, listKey(userID, filter)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// encodeList marshals a list for storage. A nil slice is stored as "[]" so an
// empty result reads back as a hit rather than a miss.
func encodeList(list []dom.Task) ([]byte, error) {
	if list == nil {
		list = []dom.Task{}
	}
	return json.Marshal(list)
}

// SetList stores the list for (userID, filter).
func (c *TaskCache) SetList(ctx context.Context, userID int64, filter string, list []dom.Task) error {
	b, err := encodeList(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(userID, filter), b, c.ttl).Err()
}

// Invalidate removes every cached list for the user (all filter variants).
func (c *TaskCache) Invalidate(ctx context.Context, userID int64) error {
	pattern := keyPrefix + strconv.FormatInt(userID, 10) + ":*"
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
