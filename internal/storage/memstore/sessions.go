package memstore

import (
	"context"
	"sync"

	"github.com/sandevgo/finbot/internal/core"
)

// Store is an in-memory core.SessionRepository. The outer RWMutex only
// guards the session map; each session carries its own lock, so turns
// for different sessions never contend.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	limit    int
}

type session struct {
	mu    sync.Mutex
	turns []core.Turn
}

// New creates a store capping each session at limit turns, oldest
// evicted first. A non-positive limit falls back to 1.
func New(limit int) *Store {
	if limit <= 0 {
		limit = 1
	}
	return &Store{
		sessions: make(map[string]*session),
		limit:    limit,
	}
}

// Append records a completed turn, creating the session on first use.
func (s *Store) Append(ctx context.Context, sessionID string, turn core.Turn) error {
	sess := s.getOrCreate(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.turns = append(sess.turns, turn)
	if len(sess.turns) > s.limit {
		overflow := len(sess.turns) - s.limit
		sess.turns = append(sess.turns[:0], sess.turns[overflow:]...)
	}
	return nil
}

// LastTurn returns a copy of the most recent turn, or nil for an
// unknown or empty session.
func (s *Store) LastTurn(ctx context.Context, sessionID string) (*core.Turn, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if len(sess.turns) == 0 {
		return nil, nil
	}
	last := sess.turns[len(sess.turns)-1]
	return &last, nil
}

// Len reports how many turns a session currently holds.
func (s *Store) Len(sessionID string) int {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return 0
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return len(sess.turns)
}

func (s *Store) getOrCreate(sessionID string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[sessionID]; ok {
		return sess
	}
	sess = &session{}
	s.sessions[sessionID] = sess
	return sess
}
