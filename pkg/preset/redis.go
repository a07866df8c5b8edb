package preset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces preset keys so the store can share a database
// with other applications.
const redisKeyPrefix = "isocam:preset:"

// redisIndexKey is the set holding the IDs of all stored presets.
const redisIndexKey = "isocam:presets"

// RedisStore persists presets in Redis. Presets are stored as JSON values
// under per-ID keys, with a set index for listing. Intended for
// multi-instance server deployments that need shared preset state.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Get retrieves a preset by ID.
func (s *RedisStore) Get(ctx context.Context, id string) (*Preset, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode preset %s: %w", id, err)
	}
	return &p, nil
}

// List returns all presets ordered by name. IDs in the index whose values
// have disappeared (e.g. flushed keys) are skipped.
func (s *RedisStore) List(ctx context.Context) ([]*Preset, error) {
	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*Preset, 0, len(ids))
	for _, id := range ids {
		p, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Save stores the preset and registers its ID in the index.
func (s *RedisStore) Save(ctx context.Context, p *Preset) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+p.ID, data, 0)
	pipe.SAdd(ctx, redisIndexKey, p.ID)
	_, err = pipe.Exec(ctx)
	return err
}

// Delete removes the preset and its index entry.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return err
	}
	if err := s.client.SRem(ctx, redisIndexKey, id).Err(); err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
