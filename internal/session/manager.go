package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager loads and saves sessions. Updates to one session are serialized;
// different sessions proceed in parallel.
type Manager struct {
	store Store
	log   *zap.Logger
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, log: log, now: time.Now, locks: make(map[string]*keyLock)}
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &keyLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// Load returns the session for id, or a new unsaved one when id is empty or
// unknown.
func (m *Manager) Load(ctx context.Context, id string) (*Session, bool, error) {
	if id != "" {
		s, err := m.store.Get(ctx, id)
		if err == nil {
			return s, false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, false, fmt.Errorf("load session: %w", err)
		}
	}
	return New(m.now()), true, nil
}

// Update runs fn on the current copy of the session and saves it when fn
// succeeds. A missing session is created under the same id.
func (m *Manager) Update(ctx context.Context, id string, fn func(s *Session) error) (*Session, error) {
	unlock := m.lock(id)
	defer unlock()

	s, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		s = New(m.now())
		s.ID = id
	} else if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if err := fn(s); err != nil {
		return s, err
	}
	s.UpdatedAt = m.now()
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// Rotate moves session id to a fresh id, applies fn to the moved copy and
// deletes the old entry. Sign-in goes through here so an id handed out
// before authentication never carries a token.
func (m *Manager) Rotate(ctx context.Context, id string, fn func(s *Session) error) (*Session, error) {
	unlock := m.lock(id)
	defer unlock()

	old, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		old = New(m.now())
	} else if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	next := old.Clone()
	next.ID = uuid.NewString()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = m.now()
	if err := m.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if id != "" {
		if err := m.store.Delete(ctx, id); err != nil {
			m.log.Warn("drop rotated session failed", zap.String("session_id", id), zap.Error(err))
		}
	}
	return next, nil
}

func (m *Manager) Save(ctx context.Context, s *Session) error {
	unlock := m.lock(s.ID)
	defer unlock()
	s.UpdatedAt = m.now()
	return m.store.Save(ctx, s)
}

func (m *Manager) Destroy(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()
	return m.store.Delete(ctx, id)
}

// ClearCredentials drops the token of session id. It is the client's 401
// hook, so it must not fail loudly.
func (m *Manager) ClearCredentials(ctx context.Context, id string) {
	_, err := m.Update(ctx, id, func(s *Session) error {
		s.SignOut()
		return nil
	})
	if err != nil {
		m.log.Warn("clear session credentials failed", zap.String("session_id", id), zap.Error(err))
	}
}

// SelectionSink persists cart deselects for one session.
func (m *Manager) SelectionSink(id string) *SelectionSink {
	return &SelectionSink{m: m, id: id}
}

type SelectionSink struct {
	m  *Manager
	id string
}

func (d *SelectionSink) Deselect(ctx context.Context, bookIDs []int64) error {
	_, err := d.m.Update(ctx, d.id, func(s *Session) error {
		s.Cart.Deselect(bookIDs...)
		return nil
	})
	return err
}
