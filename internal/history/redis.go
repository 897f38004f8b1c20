package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "mortgage:history:"

// OpenRedis connects to Redis and verifies the connection with a ping.
func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	return r, nil
}

// RedisStore keeps each session's history in a Redis list that expires with
// the session.
type RedisStore struct {
	client *redis.Client
	limit  int64
	ttl    time.Duration
}

// NewRedisStore wraps client. Non-positive arguments fall back to the defaults.
func NewRedisStore(client *redis.Client, limit int, ttl time.Duration) *RedisStore {
	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}
	if ttl <= 0 {
		ttl = constants.DefaultSessionTTL
	}
	return &RedisStore{client: client, limit: int64(limit), ttl: ttl}
}

// Append implements Store.
func (r *RedisStore) Append(ctx context.Context, sessionID string, entry Entry) error {
	if err := checkSession(sessionID); err != nil {
		return err
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	key := keyPrefix + sessionID
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.LTrim(ctx, key, -r.limit, -1)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// List implements Store. Entries are returned oldest first.
func (r *RedisStore) List(ctx context.Context, sessionID string) ([]Entry, error) {
	if err := checkSession(sessionID); err != nil {
		return nil, err
	}

	key := keyPrefix + sessionID
	raw, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if len(raw) > 0 {
		if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
			return nil, fmt.Errorf("failed to refresh history expiry: %w", err)
		}
	}
	return entries, nil
}

// Clear implements Store.
func (r *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := checkSession(sessionID); err != nil {
		return err
	}
	if err := r.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
