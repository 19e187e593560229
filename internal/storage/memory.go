// Package storage keeps visitor sessions in process memory.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dodomains/dodomains/internal/session"
)

var ErrNotFound = errors.New("not found")

type MemoryStorage struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

func CreateMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		sessions: make(map[string]*session.Session),
	}, nil
}

// GetOrCreate returns the session stored under id, creating an empty one when
// none exists.
func (m *MemoryStorage) GetOrCreate(_ context.Context, id string) (*session.Session, error) {
	if id == "" {
		return nil, errors.New("empty session id")
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// another request may have created it meanwhile
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	s = session.New(id)
	m.sessions[id] = s
	return s, nil
}

func (m *MemoryStorage) Find(_ context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStorage) Exists(_ context.Context, id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.sessions[id]
	return ok
}

func (m *MemoryStorage) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Sweep removes every session idle since before cutoff and returns how many
// were removed. Sessions with a request in flight are kept.
func (m *MemoryStorage) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if s.IdleSince(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStorage) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}
