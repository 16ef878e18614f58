package tracking

import (
	"sync"

	"sustainshare/internal/geo"
)

// Manager owns at most one live session per donation. Sessions are ephemeral
// and never persisted; they exist only while a donation is in transit.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     Options
}

// NewManager builds a session manager with the given simulation options.
func NewManager(opts Options) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// Start launches a session for a donation, replacing any previous one. The
// completion callback fires exactly once, after which the session is
// dropped.
func (m *Manager) Start(donationID string, donor, charity geo.Point, onComplete func()) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[donationID]; ok {
		existing.Stop()
	}

	session := Start(donationID, donor, charity, m.opts, func() {
		if onComplete != nil {
			onComplete()
		}
		m.remove(donationID)
	})
	m.sessions[donationID] = session
	return session
}

// Get returns a snapshot of the live session for a donation, if any.
func (m *Manager) Get(donationID string) (Snapshot, bool) {
	m.mu.Lock()
	session, ok := m.sessions[donationID]
	m.mu.Unlock()
	if !ok {
		return Snapshot{}, false
	}
	return session.Snapshot(), true
}

// Stop cancels and removes the session for a donation, if any. Called when a
// donation leaves IN_TRANSIT out-of-band, e.g. an admin forcing DELIVERED.
func (m *Manager) Stop(donationID string) {
	m.mu.Lock()
	session, ok := m.sessions[donationID]
	delete(m.sessions, donationID)
	m.mu.Unlock()
	if ok {
		session.Stop()
	}
}

func (m *Manager) remove(donationID string) {
	m.mu.Lock()
	delete(m.sessions, donationID)
	m.mu.Unlock()
}
