// Package session keys per-browser progress state off an opaque cookie. State
// lives in process memory for the lifetime of the server; losing it on restart
// is acceptable for a cosmetic progress mechanic.
package session

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/Elizabeth1979/nano-banana/internal/stages"
)

// CookieName identifies the session cookie.
const CookieName = "nb_session"

// Manager hands out per-session progress records keyed by a uuid cookie.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*stages.Progress
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*stages.Progress)}
}

// Progress returns the progress record for the request's session, creating
// the session and setting its cookie on first contact.
func (m *Manager) Progress(w http.ResponseWriter, r *http.Request) *stages.Progress {
	id := ""
	if cookie, err := r.Cookie(CookieName); err == nil {
		id = cookie.Value
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if p, ok := m.sessions[id]; ok {
			return p
		}
	}

	id = uuid.NewString()
	p := stages.NewProgress()
	m.sessions[id] = p
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return p
}

// Len reports how many sessions are live.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
