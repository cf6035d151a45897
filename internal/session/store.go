package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/evadvisor/internal/cache"
	"github.com/ppiankov/evadvisor/internal/model"
)

// ErrSessionNotFound is returned for unknown or expired session IDs
var ErrSessionNotFound = errors.New("session not found")

// Session is one interactive conversation
type Session struct {
	ID        string     `json:"id"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	History   *History   `json:"-"`
}

// Store keeps sessions in memory; idle sessions expire after the TTL
type Store struct {
	sessions *cache.MemoryCache[*Session]
	maxTurns int
}

// NewStore creates a session store
func NewStore(cfg model.SessionConfig) *Store {
	cleanup := cfg.TTL / 2
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &Store{
		sessions: cache.NewMemoryCache[*Session](cfg.TTL, cleanup),
		maxTurns: cfg.MaxTurns,
	}
}

// Create starts a new session with the given role
func (s *Store) Create(role model.Role) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		Role:      role,
		CreatedAt: time.Now().UTC(),
		History:   NewHistory(s.maxTurns),
	}
	s.sessions.Set(sess.ID, sess, cache.DefaultTTL)
	return sess
}

// Get returns a live session and extends its idle deadline
func (s *Store) Get(id string) (*Session, error) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.sessions.Touch(id)
	return sess, nil
}

// Delete ends a session
func (s *Store) Delete(id string) error {
	if _, ok := s.sessions.Get(id); !ok {
		return ErrSessionNotFound
	}
	s.sessions.Delete(id)
	return nil
}

// Len returns the number of stored sessions
func (s *Store) Len() int {
	return s.sessions.Len()
}
