package gesture

import "sync"

// Resolver guarantees gesture-type exclusivity: exactly one type may be
// committed per session. The mutex covers commits arriving from timer
// callbacks, which run off the input-processing goroutine.
type Resolver struct {
	mu        sync.Mutex
	committed map[string]Type
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{committed: make(map[string]Type)}
}

// TryCommit records t as the session's type. It returns true exactly
// once per session id; every later call, for any type, returns false.
func (r *Resolver) TryCommit(sessionID string, t Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.committed[sessionID]; exists {
		return false
	}
	r.committed[sessionID] = t
	return true
}

// Committed returns the committed type for the session, if any.
func (r *Resolver) Committed(sessionID string) (Type, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.committed[sessionID]
	return t, ok
}

// Reset frees the session's commitment mapping. Called on session end
// and cancel.
func (r *Resolver) Reset(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.committed, sessionID)
}

// Len reports the number of live commitments, for leak checks in tests.
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}
