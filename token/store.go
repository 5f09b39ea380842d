package token

import "sync"

// Store holds at most one current token. The token is replaced wholesale,
// never partially mutated, so a reader can never observe a partial write.
type Store struct {
	mu      sync.RWMutex
	current *Token
}

// NewStore describes the newstore operation and its observable behavior.
//
// NewStore may return an error when input validation, dependency calls, or security checks fail.
// NewStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewStore() *Store {
	return &Store{}
}

// Current returns a copy of the current token and whether one is held.
func (s *Store) Current() (Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Token{}, false
	}
	return s.current.Clone(), true
}

// Set replaces the current token.
func (s *Store) Set(t Token) {
	clone := t.Clone()

	s.mu.Lock()
	s.current = &clone
	s.mu.Unlock()
}
