package service

import (
	"sync"

	"github.com/rohit98064/Tele-Bot/internal/domain"
)

// SessionStore holds at most one pending resolution menu per user. It is
// the only shared mutable state in the process; every operation is atomic
// per key and no lock is ever held across I/O.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*domain.Session)}
}

// Put stores the session for its user, overwriting any existing one.
func (s *SessionStore) Put(sess *domain.Session) {
	s.mu.Lock()
	s.sessions[sess.UserID] = sess
	s.mu.Unlock()
}

// Get returns the pending session for the user, if any.
func (s *SessionStore) Get(userID int64) (*domain.Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()
	return sess, ok
}

// Remove deletes the user's session. Removing an absent key is a no-op.
func (s *SessionStore) Remove(userID int64) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// Take atomically removes and returns the user's session, so two rapid
// replies from the same user cannot both consume one menu.
func (s *SessionStore) Take(userID int64) (*domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if ok {
		delete(s.sessions, userID)
	}
	return sess, ok
}
