// Package store keeps live game sessions in memory. Sessions do not survive
// the process; there is deliberately no durable backend behind this.
package store

import (
	"errors"
	"sync"

	"minesweep/internal/game"
)

var ErrNotFound = errors.New("session not found")

type Store struct {
	mu       sync.Mutex
	nextId   int64
	sessions map[int64]*game.Session
}

func New() *Store {
	return &Store{sessions: make(map[int64]*game.Session)}
}

// Add registers a session and returns its id.
func (s *Store) Add(session *game.Session) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	s.sessions[s.nextId] = session
	return s.nextId
}

// Get retrieves a session by id. Returns [ErrNotFound] if the id is unknown.
func (s *Store) Get(id int64) (*game.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// Delete removes a session and closes it, stopping its timer and dropping
// its subscribers.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	session.Close()
	return nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
