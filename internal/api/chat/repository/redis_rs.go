package chatRepository

import (
	"context"
	"errors"

	"jusbook/internal/api/chat"
	"jusbook/internal/entity"
	contextPkg "jusbook/pkg/context"
	"jusbook/pkg/redis"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type redisStore struct {
	client redis.IRedis
	cfg    StoreConfig
	log    *logrus.Logger
}

// NewRedisStore keeps sessions as JSON values whose TTL is refreshed on every Save.
func NewRedisStore(log *logrus.Logger, client redis.IRedis, cfg StoreConfig) SessionStore {
	return &redisStore{
		client: client,
		cfg:    cfg.withDefaults(),
		log:    log,
	}
}

func (r *redisStore) key(sessionID string) string {
	return r.cfg.KeyPrefix + sessionID
}

func (r *redisStore) Get(ctx context.Context, key string) (entity.ConversationSession, error) {
	if key == "" {
		return entity.ConversationSession{}, chat.ErrEmptySessionID
	}
	requestID := contextPkg.GetRequestID(ctx)

	for attempt := 0; attempt < 2; attempt++ {
		raw, err := r.client.Get(ctx, r.key(key))
		if err == nil {
			return r.decode(requestID, raw)
		}
		if !errors.Is(err, redis.ErrNotFound) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": key,
				"error":      err.Error(),
			}).Error("Failed to load conversation session")
			return entity.ConversationSession{}, chat.ErrSessionStore
		}

		session := entity.NewConversationSession(key, r.cfg.Now())
		payload, err := json.Marshal(session)
		if err != nil {
			return entity.ConversationSession{}, err
		}

		created, err := r.client.SetNX(ctx, r.key(key), payload, r.cfg.IdleTimeout)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": key,
				"error":      err.Error(),
			}).Error("Failed to create conversation session")
			return entity.ConversationSession{}, chat.ErrSessionStore
		}
		if created {
			return session, nil
		}
		// Another instance created it first; read theirs.
	}

	return entity.ConversationSession{}, chat.ErrSessionStore
}

func (r *redisStore) decode(requestID string, raw []byte) (entity.ConversationSession, error) {
	var session entity.ConversationSession
	if err := json.Unmarshal(raw, &session); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to decode conversation session")
		return entity.ConversationSession{}, chat.ErrSessionCorrupt
	}
	return session, nil
}

func (r *redisStore) Save(ctx context.Context, session entity.ConversationSession) error {
	if session.Key == "" {
		return chat.ErrEmptySessionID
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(session.Key), payload, r.cfg.IdleTimeout); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": session.Key,
			"error":      err.Error(),
		}).Error("Failed to save conversation session")
		return chat.ErrSessionStore
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Delete(ctx, r.key(key)); err != nil {
		return chat.ErrSessionStore
	}
	return nil
}
