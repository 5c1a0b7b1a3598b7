// Package session keeps the live game sessions in memory. Each browser
// game is one isolated session; sessions never interact and die with the
// process; there is deliberately no durable storage behind this registry.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/birzha/game-engine/internal/game"
	"github.com/birzha/game-engine/internal/rng"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session: not found")

// Session bundles one game with its auto-advance runner.
type Session struct {
	ID        string
	CreatedAt time.Time
	Game      *game.Game
	Runner    *game.Runner
}

// Notify receives every auto-advanced tick of any session.
type Notify func(sessionID string, report game.DayReport)

// Registry is the in-memory session store.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	notify   Notify
}

// NewRegistry creates an empty registry. notify may be nil.
func NewRegistry(notify Notify) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		notify:   notify,
	}
}

// Create starts a new session seeded with the given value.
func (r *Registry) Create(seed int64) *Session {
	id := uuid.New().String()
	g := game.New(rng.New(seed))

	var onTick func(game.DayReport)
	if r.notify != nil {
		notify := r.notify
		onTick = func(rep game.DayReport) { notify(id, rep) }
	}

	s := &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Game:      g,
		Runner:    game.NewRunner(g, onTick, nil),
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s
}

// Get looks a session up by ID.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete stops a session's runner and removes it.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	s.Runner.Stop()
	return nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close stops every runner. Called on shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Runner.Stop()
	}
}
