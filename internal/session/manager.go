package session

import "sync"

// Manager holds one Session per presentation-level id (e.g. a chat).
type Manager struct {
	sessions map[int64]*Session
	mu       sync.RWMutex
	factory  func(id int64) *Session
}

func NewManager(factory func(id int64) *Session) *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		factory:  factory,
	}
}

func (m *Manager) Get(id int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// GetOrCreate returns the session for id, building it on first use.
func (m *Manager) GetOrCreate(id int64) *Session {
	if s := m.Get(id); s != nil {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := m.factory(id)
	m.sessions[id] = s
	return s
}

func (m *Manager) Delete(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Each calls fn for every session. fn runs without the manager lock held.
func (m *Manager) Each(fn func(*Session)) {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		fn(s)
	}
}
