package session

import (
	"context"
	"sync"
)

// MaxTurns is the bounded window of conversation history kept per session.
// Older turns are evicted first.
const MaxTurns = 10

const (
	RolePatient   = "patient"
	RoleAssistant = "assistant"
)

// Turn is a single conversation entry within a session.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Store keeps a bounded, append-only turn log per session. Appends within one
// session are serialized; different sessions operate independently.
type Store interface {
	Append(ctx context.Context, sessionID string, turn Turn) error
	History(ctx context.Context, sessionID string) ([]Turn, error)
	Clear(ctx context.Context, sessionID string) error
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionLog
}

type sessionLog struct {
	mu    sync.Mutex
	turns []Turn
}

// NewMemoryStore returns an in-process Store. Sessions are created lazily on
// first append and never expire on their own.
func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string]*sessionLog)}
}

func (s *memoryStore) log(sessionID string) *sessionLog {
	s.mu.RLock()
	l, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return l
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok = s.sessions[sessionID]; !ok {
		l = &sessionLog{}
		s.sessions[sessionID] = l
	}
	return l
}

func (s *memoryStore) Append(_ context.Context, sessionID string, turn Turn) error {
	l := s.log(sessionID)
	l.mu.Lock()
	defer l.mu.Unlock()

	l.turns = append(l.turns, turn)
	if len(l.turns) > MaxTurns {
		trimmed := make([]Turn, MaxTurns)
		copy(trimmed, l.turns[len(l.turns)-MaxTurns:])
		l.turns = trimmed
	}
	return nil
}

func (s *memoryStore) History(_ context.Context, sessionID string) ([]Turn, error) {
	s.mu.RLock()
	l, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out, nil
}

// Clear removes the session entirely. Clearing an absent session is a no-op.
func (s *memoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
