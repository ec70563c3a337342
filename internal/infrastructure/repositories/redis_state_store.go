package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	domainRepos "smart-upi.backend/internal/domain/repositories"
)

const redisKeyPrefix = "smartupi:"

// RedisStateStore implements StateStore on Redis. Records are stored as JSON
// strings under prefixed keys with no expiry.
type RedisStateStore struct {
	client *redis.Client
}

// NewRedisStateStore creates a new redis-backed state store
func NewRedisStateStore(client *redis.Client) *RedisStateStore {
	return &RedisStateStore{client: client}
}

// Load reads all records with a single MGET
func (s *RedisStateStore) Load(ctx context.Context) (*domainRepos.LedgerState, error) {
	keys := make([]string, 0, 4)
	for _, k := range recordKeys() {
		keys = append(keys, redisKeyPrefix+k)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	state := domainRepos.NewLedgerState()
	targets := []interface{}{&state.Orders, &state.Attempts, &state.OfflineQueue, &state.Online}
	for i, v := range values {
		if v == nil {
			continue
		}
		raw, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected value type for %s", keys[i])
		}
		if err := json.Unmarshal([]byte(raw), targets[i]); err != nil {
			return nil, fmt.Errorf("corrupt %s record: %w", keys[i], err)
		}
	}
	return state, nil
}

// Save writes all records in one pipeline
func (s *RedisStateStore) Save(ctx context.Context, state *domainRepos.LedgerState) error {
	records, err := encodeRecords(state)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	for _, r := range records {
		pipe.Set(ctx, redisKeyPrefix+r.Key, r.Value, 0)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Purge removes all records
func (s *RedisStateStore) Purge(ctx context.Context) error {
	keys := make([]string, 0, 4)
	for _, k := range recordKeys() {
		keys = append(keys, redisKeyPrefix+k)
	}
	return s.client.Del(ctx, keys...).Err()
}
