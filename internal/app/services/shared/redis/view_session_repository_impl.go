package redis

import (
	"context"
	"fmt"
	"patient-chart-service/internal/app/contracts"
	"patient-chart-service/internal/app/models"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type viewSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewSessionRepository stores view sessions as JSON strings that expire ttl after their last save.
func NewViewSessionRepository(client *redis.Client, ttl time.Duration) contracts.ViewSessionRepository {
	return &viewSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *viewSessionRepository) GetViewSession(ctx context.Context, sessionID string) (*models.ViewSession, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrRedisGet(err)
	}

	session := new(models.ViewSession)
	err = json.Unmarshal([]byte(data), session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func (r *viewSessionRepository) SaveViewSession(ctx context.Context, session *models.ViewSession) error {
	jsonValue, err := json.Marshal(session)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = r.client.Set(ctx, sessionKey(session.SessionID), jsonValue, r.ttl).Err()
	if err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

func (r *viewSessionRepository) DeleteViewSession(ctx context.Context, sessionID string) error {
	err := r.client.Del(ctx, sessionKey(sessionID)).Err()
	if err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf(constvars.ViewSessionRedisKey, sessionID)
}
