package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryKey struct {
	userID uint64
	kind   Kind
}

// MemoryStore is the process-local backend. Correct for a single instance
// only; replicated deployments must use the redis backend so conflicting
// sessions cannot start on different instances.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[memoryKey]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[memoryKey]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey{userID: sess.UserID, kind: sess.Kind}

	if live, ok := s.sessions[key]; ok && live.ExpiresAt.After(s.now()) {
		return ErrSessionActive
	}

	stored := *sess
	stored.ExpiresAt = s.now().Add(s.ttl)
	s.sessions[key] = &stored

	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID uint64, kind Kind) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.liveLocked(userID, kind)
	if err != nil {
		return nil, err
	}

	out := *sess

	return &out, nil
}

func (s *MemoryStore) Touch(_ context.Context, userID uint64, kind Kind, state json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.liveLocked(userID, kind)
	if err != nil {
		return err
	}

	sess.State = state
	sess.ExpiresAt = s.now().Add(s.ttl)

	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, userID uint64, kind Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, memoryKey{userID: userID, kind: kind})

	return nil
}

// Sweep evicts every expired session and reports how many were removed.
// Wired to the cron scheduler.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0

	for key, sess := range s.sessions {
		if !sess.ExpiresAt.After(now) {
			delete(s.sessions, key)
			evicted++
		}
	}

	return evicted
}

// liveLocked returns the stored session, evicting it first if expired.
func (s *MemoryStore) liveLocked(userID uint64, kind Kind) (*Session, error) {
	key := memoryKey{userID: userID, kind: kind}

	sess, ok := s.sessions[key]
	if !ok {
		return nil, ErrNoSession
	}

	if !sess.ExpiresAt.After(s.now()) {
		delete(s.sessions, key)

		return nil, fmt.Errorf("session expired: %w", ErrNoSession)
	}

	return sess, nil
}
