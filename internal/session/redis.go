package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore 把令牌和用户分别保存在 <prefix>token 和 <prefix>user 两个键里
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (r *RedisStore) Load(ctx context.Context) (*domain.Session, error) {
	token, err := r.rdb.Get(ctx, r.prefix+TokenKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	s := &domain.Session{Token: token}

	raw, err := r.rdb.Get(ctx, r.prefix+UserKey).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return s, nil
	case err != nil:
		return nil, err
	}

	user := &domain.User{}
	if err := json.Unmarshal(raw, user); err != nil {
		// 缓存的用户信息坏了不影响令牌本身
		return s, nil
	}
	s.User = user
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *domain.Session) error {
	var user []byte
	if s.User != nil {
		var err error
		if user, err = json.Marshal(s.User); err != nil {
			return err
		}
	}

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.prefix+TokenKey, s.Token, 0)
		if user != nil {
			pipe.Set(ctx, r.prefix+UserKey, user, 0)
		} else {
			pipe.Del(ctx, r.prefix+UserKey)
		}
		return nil
	})
	return err
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.rdb.Del(ctx, r.prefix+TokenKey, r.prefix+UserKey).Err()
}
