package repository

import (
	"context"
	"encoding/json"
	"time"

	"quizhub_backend/internal/session"
	"quizhub_backend/internal/util"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "quiz:session:"

// SessionRepository stores ephemeral quiz session snapshots in Redis.
// Sessions are isolated per key and expire with the configured TTL;
// nothing crosses session boundaries.
type SessionRepository struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{RDB: rdb, TTL: ttl}
}

func (r *SessionRepository) Save(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, sessionKeyPrefix+s.ID, data, r.TTL).Err()
}

func (r *SessionRepository) Find(ctx context.Context, id string) (*session.Session, error) {
	data, err := r.RDB.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.RDB.Del(ctx, sessionKeyPrefix+id).Err()
}
