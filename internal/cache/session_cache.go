package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medeval/internal/model"

	"github.com/redis/go-redis/v9"
)

// SessionCache handles Redis storage for annotation sessions
type SessionCache interface {
	Set(ctx context.Context, session *model.AnnotationSession) error
	Get(ctx context.Context, id string) (*model.AnnotationSession, error)
	Delete(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a session cache whose entries expire after ttl
func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Set stores the session and restarts its expiry
func (c *sessionCache) Set(ctx context.Context, session *model.AnnotationSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ID), data, c.ttl).Err()
}

// Get returns nil, nil when the session is unknown or expired
func (c *sessionCache) Get(ctx context.Context, id string) (*model.AnnotationSession, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.AnnotationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
