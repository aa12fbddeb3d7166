package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/academy-uk/placement-exam/internal/model"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore is the in-memory home of all exam sessions. Nothing survives
// a restart: sessions are ephemeral per the product's no-persistence rule,
// and the janitor removes submitted ones after the retention window.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*model.ExamSession
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*model.ExamSession),
	}
}

// Put registers a session.
func (s *SessionStore) Put(session *model.ExamSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

// Get returns the session or ErrSessionNotFound.
func (s *SessionStore) Get(id uuid.UUID) (*model.ExamSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session; deleting an unknown id is a no-op.
func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Snapshot returns the current sessions. The slice is fresh; the pointers
// are shared, so callers must go through session methods for any mutation.
func (s *SessionStore) Snapshot() []*model.ExamSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.ExamSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	return out
}

// SweepSubmitted deletes submitted sessions older than the retention window
// and returns how many were removed.
func (s *SessionStore) SweepSubmitted(retention time.Duration) int {
	cutoff := time.Now().Add(-retention)
	removed := 0

	for _, session := range s.Snapshot() {
		submittedAt := session.SubmittedAt()
		if submittedAt != nil && submittedAt.Before(cutoff) {
			s.Delete(session.ID)
			removed++
		}
	}
	return removed
}
