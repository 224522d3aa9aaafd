package idempotency

import (
	"context"
	"time"

	"icms/internal/pkg/config"
	"icms/internal/pkg/errs"
	"icms/internal/usecase/commands"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RedisStore keeps one record per key. A key is claimed with SET NX and a
// short lock TTL, then overwritten with the final result and the longer TTL.
type RedisStore struct {
	client  redis.Cmdable
	prefix  string
	ttl     time.Duration
	lockTTL time.Duration
	now     func() time.Time
}

var _ commands.IdempotencyStore = (*RedisStore)(nil)

func NewRedisStore(client redis.Cmdable, cfg config.IdempotencyConfig) *RedisStore {
	return &RedisStore{
		client:  client,
		prefix:  cfg.KeyPrefix,
		ttl:     cfg.TTL,
		lockTTL: cfg.LockTTL,
		now:     time.Now,
	}
}

func (s *RedisStore) Begin(ctx context.Context, key, requestHash string) (*commands.IdempotencyRecord, error) {
	claim, err := encode(commands.IdempotencyRecord{
		Status:      commands.IdempotencyProcessing,
		RequestHash: requestHash,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}

	// the existing record can expire between SETNX and GET, so try twice
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, s.redisKey(key), claim, s.lockTTL).Result()
		if err != nil {
			return nil, errs.Wrap(err, "redis: claim idempotency key")
		}
		if ok {
			return nil, nil
		}

		raw, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
		if errs.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, errs.Wrap(err, "redis: read idempotency key")
		}
		return decode(raw)
	}

	return nil, errs.New("idempotency key kept changing while claiming it")
}

func (s *RedisStore) Complete(ctx context.Context, key string, record commands.IdempotencyRecord) error {
	raw, err := encode(record)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.redisKey(key), raw, s.ttl).Err(); err != nil {
		return errs.Wrap(err, "redis: store idempotent result")
	}
	return nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return errs.Wrap(err, "redis: release idempotency key")
	}
	return nil
}

func (s *RedisStore) redisKey(key string) string {
	return s.prefix + key
}

func encode(record commands.IdempotencyRecord) ([]byte, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, errs.Wrap(err, "encode idempotency record")
	}
	return raw, nil
}

func decode(raw []byte) (*commands.IdempotencyRecord, error) {
	var record commands.IdempotencyRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, errs.Wrap(err, "decode idempotency record")
	}
	return &record, nil
}
