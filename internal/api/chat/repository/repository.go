package chatRepository

import (
	"context"
	"time"

	"jusbook/internal/entity"
)

// SessionStore keeps one conversation session per key. Get never fails for a
// missing key: it stores and returns a fresh idle session, so repeated Gets
// of an unseen key observe the same session.
type SessionStore interface {
	Get(ctx context.Context, key string) (entity.ConversationSession, error)
	Save(ctx context.Context, session entity.ConversationSession) error
	Delete(ctx context.Context, key string) error
}

type StoreConfig struct {
	IdleTimeout time.Duration
	MaxSessions int
	KeyPrefix   string
	Now         func() time.Time
}

func (c StoreConfig) withDefaults() StoreConfig {
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 30 * time.Minute
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = 10000
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "jusbook:chat:session:"
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}
