package assistant

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager tracks live assistant sessions so they can be looked up and torn
// down as a group on shutdown. Sessions own their provider handles; the
// manager only owns membership.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	logger   zerolog.Logger
}

func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		logger:   logger.With().Str("component", "assistant_manager").Logger(),
	}
}

// Register adds a session to the live set.
func (m *Manager) Register(s *Session) {
	m.mu.Lock()
	m.sessions[s.ID()] = s
	count := len(m.sessions)
	m.mu.Unlock()
	m.logger.Debug().Int("live", count).Msg("session registered")
}

// Dispose closes a session and removes it from the live set.
func (m *Manager) Dispose(id uuid.UUID) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
}

// Get returns a live session by ID.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// CloseAll tears down every live session. Used on graceful shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()

	for _, s := range live {
		s.Close()
	}
}
