package session

import (
	"context"
	"errors"
	"time"

	"github.com/Cheertaboi/bookverse-storefront/internal/cache"
)

var ErrNotFound = errors.New("session: not found")

// Store persists sessions between requests.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process. Values are copied in and out so
// callers never share a Session.
type MemoryStore struct {
	entries *cache.Cache[string, *Session]
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{entries: cache.New[string, *Session](ttl)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s, ok := m.entries.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.entries.Set(s.ID, s.Clone())
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.entries.Delete(id)
	return nil
}

// Sweep drops expired sessions.
func (m *MemoryStore) Sweep() int {
	return m.entries.Sweep()
}
