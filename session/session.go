// Package session keeps per-conversation state. One session is one
// user's ordered turn list; the index and model clients are shared
// read-only across sessions, the sessions themselves are not.
package session

import (
	"sync"

	"fcajbot/types"
)

type Session struct {
	mu    sync.Mutex
	id    string
	turns []types.Turn
}

func (s *Session) ID() string {
	return s.id
}

// Append records a turn at the end of the session.
func (s *Session) Append(t types.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, t)
}

// Turns returns a copy of the ordered turn list.
func (s *Session) Turns() []types.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Clear drops every turn. Reset is always a full clear, never a
// selective deletion.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Manager hands out sessions keyed by ID, creating them on first use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating an empty one on first
// request.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s = &Session{id: id}
	m.sessions[id] = s
	return s
}

// Reset clears the session for id. A reset of an unknown id is a no-op.
func (m *Manager) Reset(id string) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.Clear()
	}
}
