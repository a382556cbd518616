package repos

import (
	"sync"

	"printforge/internal/domain"
)

// SessionRepo holds per-user dialog records. Sessions are created lazily
// on first use and accumulate without eviction; Delete exists so an
// expiry sweep can be added without changing callers.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: map[string]domain.Session{}}
}

// Get returns the user's session, or a fresh idle one.
func (r *SessionRepo) Get(user string) domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[user]
}

func (r *SessionRepo) Upsert(user string, s domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[user] = s
}

// Reset returns the user to an idle session with no pending fields.
func (r *SessionRepo) Reset(user string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[user] = domain.Session{}
}

func (r *SessionRepo) Delete(user string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, user)
}
