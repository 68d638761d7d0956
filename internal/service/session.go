// Package service owns a live colony and drives it in real time.
package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/napolitain/homebound/internal/colony"
	"github.com/napolitain/homebound/internal/snapshot"
)

// Session guards one colony so mutators only ever run between ticks
type Session struct {
	mu     sync.Mutex
	colony *colony.Colony
}

// NewSession wraps c. The caller must not touch c directly afterwards.
func NewSession(c *colony.Colony) *Session {
	return &Session{colony: c}
}

// ID returns the colony identity
func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.colony.ID()
}

// Do runs fn with exclusive access to the colony and returns its result.
// fn must not retain the colony.
func (s *Session) Do(fn func(c *colony.Colony) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.colony)
}

// View returns a snapshot taken between ticks
func (s *Session) View() snapshot.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot.Take(s.colony)
}

// Tick advances the colony by dt and returns the resulting snapshot
func (s *Session) Tick(dt float64) snapshot.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colony.Update(dt)
	return snapshot.Take(s.colony)
}
