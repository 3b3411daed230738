// Package session provides per-visitor key/value state behind a small
// store interface so handlers stay testable. The in-memory implementation
// is good enough for a single-process deployment; a shared backend can be
// swapped in behind the same interface.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an idle session survives before the sweeper
// drops it.
const DefaultTTL = 24 * time.Hour

const cookieName = "session_id"

type contextKey string

const sessionContextKey contextKey = "session"

// Store is the per-visitor session capability handed to handlers.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Pop(key string) (any, bool)
}

type memorySession struct {
	mu       sync.Mutex
	values   map[string]any
	lastSeen time.Time
}

func (s *memorySession) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *memorySession) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *memorySession) Pop(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if ok {
		delete(s.values, key)
	}
	return v, ok
}

// Manager owns every live session, keyed by the cookie id.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	ttl      time.Duration
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*memorySession),
		ttl:      DefaultTTL,
		now:      time.Now,
	}
}

// get returns the session for id, creating it if needed, and sweeps
// expired sessions while it holds the lock.
func (m *Manager) get(id string) *memorySession {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for sid, sess := range m.sessions {
		if now.Sub(sess.lastSeen) > m.ttl {
			delete(m.sessions, sid)
		}
	}

	sess, ok := m.sessions[id]
	if !ok {
		sess = &memorySession{values: make(map[string]any)}
		m.sessions[id] = sess
	}
	sess.lastSeen = now
	return sess
}

// Middleware attaches a Store to the request context, minting a session
// cookie on first contact.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(cookieName); err == nil {
			id = cookie.Value
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		store := m.get(id)
		ctx := context.WithValue(r.Context(), sessionContextKey, Store(store))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the request's session store. Handlers are only
// reachable through the middleware, so a missing store is a programming
// error.
func FromContext(ctx context.Context) Store {
	store, _ := ctx.Value(sessionContextKey).(Store)
	return store
}

// NewContext injects a store directly; used by tests.
func NewContext(ctx context.Context, store Store) context.Context {
	return context.WithValue(ctx, sessionContextKey, store)
}
