package sessionstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/colegio-app/colegio/core/session"
)

const keyPrefix = "session:"

type redisStore struct {
	client *redis.Client
}

var _ session.Store = (*redisStore)(nil) // interface compliance check

func NewRedisStore(client *redis.Client) *redisStore {
	return &redisStore{client: client}
}

func (store *redisStore) Save(ctx context.Context, sess session.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "marshalling session")
	}
	if err = store.client.Set(ctx, keyPrefix+sess.ID, data, ttl).Err(); err != nil {
		return errors.Wrap(err, "saving session")
	}
	return nil
}

func (store *redisStore) Get(ctx context.Context, id string) (session.Session, error) {
	data, err := store.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, errors.Wrap(err, "getting session")
	}

	var sess session.Session
	if err = json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, errors.Wrap(err, "unmarshalling session")
	}
	return sess, nil
}

func (store *redisStore) Delete(ctx context.Context, id string) error {
	if err := store.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return nil
}
