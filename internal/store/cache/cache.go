// Package cache wraps a store.Store with a Redis read-through cache for
// the list calls. Any write moves both lists to a new generation.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/apper-canvas/taskflow/internal/logger"
	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/store"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const (
	tasksKey      = "taskflow:tasks"
	categoriesKey = "taskflow:categories"
	// generationKey is bumped by every write. List entries are stored
	// under their generation, so a fill that raced a write lands in a key
	// nobody reads again.
	generationKey = "taskflow:generation"
)

// Store caches ListTasks and ListCategories of the wrapped store
type Store struct {
	store.Store
	redis *redis.Client
	ttl   time.Duration
}

// New wraps base. A nil client or a zero ttl disables caching.
func New(base store.Store, client *redis.Client, ttl time.Duration) *Store {
	if base == nil {
		panic("cache.New: base store is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Store{Store: base, redis: client, ttl: ttl}
}

// Close closes the wrapped store and the Redis client
func (c *Store) Close() error {
	err := c.Store.Close()
	if c.redis != nil {
		err = errors.Join(err, c.redis.Close())
	}
	return err
}

// ListTasks implements store.TaskStore.
func (c *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	return list(ctx, c, tasksKey, c.Store.ListTasks)
}

// ListCategories implements store.CategoryStore.
func (c *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	return list(ctx, c, categoriesKey, c.Store.ListCategories)
}

// CreateTask implements store.TaskStore.
func (c *Store) CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	t, err := c.Store.CreateTask(ctx, draft)
	if err == nil {
		c.evict(ctx)
	}
	return t, err
}

// UpdateTask implements store.TaskStore.
func (c *Store) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	t, err := c.Store.UpdateTask(ctx, id, patch)
	if err == nil {
		c.evict(ctx)
	}
	return t, err
}

// DeleteTask implements store.TaskStore.
func (c *Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	ok, err := c.Store.DeleteTask(ctx, id)
	if err == nil {
		c.evict(ctx)
	}
	return ok, err
}

// CreateCategory implements store.CategoryStore.
func (c *Store) CreateCategory(ctx context.Context, draft model.CategoryDraft) (model.Category, error) {
	cat, err := c.Store.CreateCategory(ctx, draft)
	if err == nil {
		c.evict(ctx)
	}
	return cat, err
}

// UpdateCategory implements store.CategoryStore.
func (c *Store) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) (model.Category, error) {
	cat, err := c.Store.UpdateCategory(ctx, id, patch)
	if err == nil {
		c.evict(ctx)
	}
	return cat, err
}

// DeleteCategory implements store.CategoryStore.
func (c *Store) DeleteCategory(ctx context.Context, id string) (bool, error) {
	ok, err := c.Store.DeleteCategory(ctx, id)
	if err == nil {
		c.evict(ctx)
	}
	return ok, err
}

func (c *Store) enabled() bool {
	return c.redis != nil && c.ttl > 0
}

// list serves key from the cache or fills it from fetch. The generation is
// read before fetch runs.
func list[T any](ctx context.Context, c *Store, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if !c.enabled() {
		return fetch(ctx)
	}
	gen, err := c.generation(ctx)
	if err != nil {
		logger.Warn("Cache generation read failed", logger.Err(err))
		return fetch(ctx)
	}
	key = generationalKey(key, gen)

	var out []T
	if load(ctx, c, key, &out) {
		return out, nil
	}
	out, err = fetch(ctx)
	if err != nil {
		return nil, err
	}
	save(ctx, c, key, out)
	return out, nil
}

func (c *Store) generation(ctx context.Context) (int64, error) {
	gen, err := c.redis.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func generationalKey(key string, gen int64) string {
	return key + ":" + strconv.FormatInt(gen, 10)
}

func load[T any](ctx context.Context, c *Store, key string, out *T) bool {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Fall back to the store on redis errors.
			logger.Warn("Cache read failed", logger.F("key", key), logger.Err(err))
			_ = c.redis.Del(ctx, key).Err()
		}
		return false
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return false
	}
	return true
}

func save(ctx context.Context, c *Store, key string, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn("Cache write failed", logger.F("key", key), logger.Err(err))
	}
}

// evict starts a new generation and drops the lists of the previous one
func (c *Store) evict(ctx context.Context) {
	if !c.enabled() {
		return
	}
	gen, err := c.redis.Incr(ctx, generationKey).Result()
	if err != nil {
		logger.Warn("Cache eviction failed", logger.Err(err))
		return
	}
	prev := gen - 1
	_ = c.redis.Del(ctx, generationalKey(tasksKey, prev), generationalKey(categoriesKey, prev)).Err()
}
