package chatRepository

import (
	"context"
	"sync"

	"jusbook/internal/api/chat"
	"jusbook/internal/entity"
	contextPkg "jusbook/pkg/context"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

type memoryStore struct {
	cache *expirable.LRU[string, entity.ConversationSession]
	mu    sync.Mutex
	cfg   StoreConfig
	log   *logrus.Logger
}

// NewMemoryStore keeps sessions in a size bounded LRU. Entries expire after
// IdleTimeout without a Save.
func NewMemoryStore(log *logrus.Logger, cfg StoreConfig) SessionStore {
	cfg = cfg.withDefaults()

	onEvict := func(key string, session entity.ConversationSession) {
		log.WithFields(logrus.Fields{
			"session_id": key,
			"turns":      session.TurnCount,
		}).Debug("Conversation session evicted")
	}

	return &memoryStore{
		cache: expirable.NewLRU[string, entity.ConversationSession](cfg.MaxSessions, onEvict, cfg.IdleTimeout),
		cfg:   cfg,
		log:   log,
	}
}

func (m *memoryStore) Get(ctx context.Context, key string) (entity.ConversationSession, error) {
	if key == "" {
		return entity.ConversationSession{}, chat.ErrEmptySessionID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.cache.Get(key); ok {
		return session.Clone(), nil
	}

	session := entity.NewConversationSession(key, m.cfg.Now())
	m.cache.Add(key, session)

	m.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": key,
	}).Debug("Conversation session created")

	return session.Clone(), nil
}

func (m *memoryStore) Save(ctx context.Context, session entity.ConversationSession) error {
	if session.Key == "" {
		return chat.ErrEmptySessionID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache.Add(session.Key, session.Clone())
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache.Remove(key)
	return nil
}
