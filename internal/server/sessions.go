package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-extractor/internal/correction"
)

// DefaultSessionTTL is how long an idle correction session is kept
const DefaultSessionTTL = 30 * time.Minute

// sessionEntry is one open correction session. mu serializes every call on
// the session, which is not safe for concurrent use by itself.
type sessionEntry struct {
	mu       sync.Mutex
	session  *correction.Session
	resumeID *uuid.UUID // set when the session edits a stored resume
	lastUsed time.Time
}

// sessionRegistry holds open sessions in memory, evicting idle ones lazily
type sessionRegistry struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*sessionEntry
	ttl     time.Duration
	now     func() time.Time
}

func newSessionRegistry(ttl time.Duration) *sessionRegistry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionRegistry{
		entries: make(map[uuid.UUID]*sessionEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *sessionRegistry) create(session *correction.Session, resumeID *uuid.UUID) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()
	id := uuid.New()
	r.entries[id] = &sessionEntry{session: session, resumeID: resumeID, lastUsed: r.now()}
	return id
}

func (r *sessionRegistry) get(id uuid.UUID) (*sessionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok || r.now().Sub(entry.lastUsed) > r.ttl {
		delete(r.entries, id)
		return nil, &ErrSessionNotFound{SessionID: id}
	}
	entry.lastUsed = r.now()
	return entry, nil
}

func (r *sessionRegistry) remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.entries[id]
	delete(r.entries, id)
	return ok
}

func (r *sessionRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// sweepLocked drops idle sessions; r.mu must be held
func (r *sessionRegistry) sweepLocked() {
	cutoff := r.now().Add(-r.ttl)
	for id, entry := range r.entries {
		if entry.lastUsed.Before(cutoff) {
			delete(r.entries, id)
		}
	}
}
