package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/domain/repository"
	"github.com/tour-navigation/internal/pkg/errors"
)

const sessionKeyPrefix = "navigation:session:"

type sessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSessionRepository создает хранилище снимков сессий с TTL
func NewSessionRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) repository.SessionRepository {
	return &sessionRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.NavigationSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		r.logger.Error("Failed to marshal session",
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
		return errors.ErrCacheError
	}

	key := sessionKey(session.ID)
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save session snapshot",
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
		return errors.ErrCacheError
	}

	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.NavigationSession, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get session snapshot",
			zap.String("session_id", id.String()),
			zap.Error(err))
		return nil, errors.ErrCacheError
	}

	var session domain.NavigationSession
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Error("Failed to unmarshal session",
			zap.String("session_id", id.String()),
			zap.Error(err))
		return nil, errors.ErrCacheError
	}

	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session snapshot",
			zap.String("session_id", id.String()),
			zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, id.String())
}
