package auth

import "sync"

// Registry is the process-wide set of live sessions, keyed by session
// token. Membership is revocation bookkeeping only: the registry never
// owns a session, the client that logged in does.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Token()] = s
}

// remove deletes the token and reports whether it was present. The check
// and delete are atomic so two logouts of the same session account the
// removal at most once.
func (r *Registry) remove(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[token]
	if ok {
		delete(r.sessions, token)
	}
	return ok
}

// Lookup returns the live session for the token, if any.
func (r *Registry) Lookup(token string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	return s, ok
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
