package store

import (
	"errors"
	"sync"
	"time"

	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/chat"
)

var (
	// ErrNotFound is returned when no session exists for a given id.
	ErrNotFound = errors.New("no session with that id")
)

// SessionStore is a concurrency-safe in-memory registry of chat sessions.
// Transcripts live only for the process lifetime; idle sessions are pruned
// by the retention sweeper.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session

	// maxIdle is how long a session may sit untouched before pruning
	// removes it. <= 0 means unlimited.
	maxIdle time.Duration
}

// NewSessionStore creates a SessionStore with the given idle retention.
func NewSessionStore(maxIdle time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*chat.Session),
		maxIdle:  maxIdle,
	}
}

// Put registers a session under its id.
func (s *SessionStore) Put(sess *chat.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

// Get returns the session for an id.
func (s *SessionStore) Get(id string) (*chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Delete removes a session. Removing an unknown id is a no-op.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports how many sessions are registered.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Prune drops sessions idle beyond the retention window and returns how many
// were removed.
func (s *SessionStore) Prune() int {
	if s.maxIdle <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-s.maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.LastActive().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
