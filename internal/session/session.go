// Package session provides the visitor-scoped key/value bag the cart lives
// in. Sessions are explicit values handed to callers, not ambient request
// state: cart and checkout code receives a *Session and never touches the
// cookie layer.
package session

import "sync"

type Session struct {
	id string

	mu       sync.Mutex
	values   map[string]any
	modified bool
}

func newSession(id string) *Session {
	return &Session{
		id:     id,
		values: make(map[string]any),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.modified = true
}

func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.modified = true
}

// MarkModified flags the session dirty so the store persists it even when a
// caller mutated a value in place rather than through Set.
func (s *Session) MarkModified() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modified = true
}

func (s *Session) Modified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modified
}
