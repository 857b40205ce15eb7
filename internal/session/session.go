// internal/session/session.go
//
// Server-side session store.
//
// Context
// -------
// Sessions live in process memory, keyed by an opaque identifier that the
// client carries in an HTTP-only cookie scoped to the API path.  The
// cookie never holds session content.  Two tabs sharing one identifier
// observe a single mutable value map guarded by the session's own lock;
// there is no per-request isolation, only data-race safety.
//
// Lifecycle
// ---------
// Start resumes the session named by the cookie or creates a fresh one.
// Each resume bumps the idle clock; a background janitor sweeps sessions
// that stay idle past the configured TTL.  Destroy removes the session
// immediately and expires the cookie.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oakharbor/storefront/internal/metrics"
)

const janitorInterval = time.Minute

// Session is one visitor's server-side state.  Safe for concurrent use.
type Session struct {
	id string

	mu       sync.RWMutex
	values   map[string]any
	lastSeen time.Time
}

// ID returns the opaque session identifier.
func (s *Session) ID() string { return s.id }

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the string under key, or "" when absent or not a
// string.
func (s *Session) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// GetInt64 returns the int64 under key, or 0 when absent.
func (s *Session) GetInt64(key string) int64 {
	v, _ := s.Get(key)
	n, _ := v.(int64)
	return n
}

// Set stores value under key.
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Delete removes key.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.lastSeen)
}

// Manager owns every live session.  One Manager is created at startup
// and shared by all request goroutines.
type Manager struct {
	cookieName string
	cookiePath string
	idleTTL    time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager builds a Manager and starts its janitor goroutine.  The
// janitor runs for the life of the process.
func NewManager(cookieName, cookiePath string, idleTTL time.Duration) *Manager {
	m := &Manager{
		cookieName: cookieName,
		cookiePath: cookiePath,
		idleTTL:    idleTTL,
		sessions:   make(map[string]*Session),
	}
	go m.janitor()
	return m
}

// CookieName returns the configured session cookie name.
func (m *Manager) CookieName() string { return m.cookieName }

// Start resumes the session identified by cookieVal or creates a new
// one.  The returned cookie is non-nil only when the client must be sent
// a (new) identifier.
func (m *Manager) Start(cookieVal string) (*Session, *http.Cookie) {
	now := time.Now()

	if cookieVal != "" {
		m.mu.RLock()
		s := m.sessions[cookieVal]
		m.mu.RUnlock()
		if s != nil && s.idleSince(now) <= m.idleTTL {
			s.touch(now)
			return s, nil
		}
		// Expired or unknown identifier: fall through and mint a new one.
	}

	s := &Session{
		id:       uuid.NewString(),
		values:   make(map[string]any),
		lastSeen: now,
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	n := len(m.sessions)
	m.mu.Unlock()
	metrics.ActiveSessions.Set(float64(n))

	return s, m.cookie(s.id, 0)
}

// Destroy removes s from the store and returns an expired cookie for the
// client.  Safe to call with an already-destroyed session.
func (m *Manager) Destroy(s *Session) *http.Cookie {
	m.mu.Lock()
	delete(m.sessions, s.id)
	n := len(m.sessions)
	m.mu.Unlock()
	metrics.ActiveSessions.Set(float64(n))

	return m.cookie("", -1)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// cookie builds the session cookie.  maxAge < 0 expires it.
func (m *Manager) cookie(val string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    val,
		Path:     m.cookiePath,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

// janitor sweeps idle sessions once a minute.
func (m *Manager) janitor() {
	tick := time.NewTicker(janitorInterval)
	defer tick.Stop()

	for range tick.C {
		now := time.Now()
		var stale []string

		m.mu.RLock()
		for id, s := range m.sessions {
			if s.idleSince(now) > m.idleTTL {
				stale = append(stale, id)
			}
		}
		m.mu.RUnlock()

		if len(stale) == 0 {
			continue
		}

		m.mu.Lock()
		for _, id := range stale {
			delete(m.sessions, id)
		}
		n := len(m.sessions)
		m.mu.Unlock()

		metrics.ActiveSessions.Set(float64(n))
		zap.S().Debugw("sessions swept", "expired", len(stale), "live", n)
	}
}
