package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/patrickmn/go-cache"
)

var _ ports.SessionStore = (*MemoryStore)(nil)

// MemoryStore estado de sesión en el proceso. Se usa cuando no hay REDIS_ADDR y en tests.
// Los valores se guardan serializados para que Get devuelva copias, igual que Redis.
type MemoryStore struct {
	c *cache.Cache
}

// NewMemoryStore ttl<=0 significa sin vencimiento.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		return &MemoryStore{c: cache.New(cache.NoExpiration, 0)}
	}
	return &MemoryStore{c: cache.New(ttl, 2*ttl)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string, dst any) (bool, error) {
	v, ok := s.c.Get(redisKey(sessionID, key))
	if !ok {
		return false, nil
	}
	payload, ok := v.([]byte)
	if !ok {
		return false, fmt.Errorf("decode session value: tipo inesperado %T", v)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("decode session value: %w", err)
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session value: %w", err)
	}
	s.c.Set(redisKey(sessionID, key), payload, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID, key string) error {
	s.c.Delete(redisKey(sessionID, key))
	return nil
}
