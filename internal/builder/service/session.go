package service

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"invite-builder/internal/builder/editor"
	"invite-builder/internal/common/metrics"
)

var ErrSessionNotFound = errors.New("session not found")

// ============================================================
// Session Manager
// ============================================================

type sessionEntry struct {
	mu        sync.Mutex
	projectID string
	session   *editor.Session
}

// SessionManager maps tokens to open editing sessions. The map has its own
// lock; every session is additionally serialized by With.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*sessionEntry),
	}
}

// Open registers s for projectID and returns its token.
func (m *SessionManager) Open(projectID string, s *editor.Session) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	m.sessions[token] = &sessionEntry{projectID: projectID, session: s}
	metrics.SessionOpened()
	return token
}

// With runs fn while holding the session's lock.
func (m *SessionManager) With(token string, fn func(projectID string, s *editor.Session) error) error {
	entry, ok := m.lookup(token)
	if !ok {
		return ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.projectID, entry.session)
}

func (m *SessionManager) Close(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[token]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, token)
	metrics.SessionClosed()
	return nil
}

// CloseProject drops every session of projectID (the project was deleted).
func (m *SessionManager) CloseProject(projectID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	closed := 0
	for token, entry := range m.sessions {
		if entry.projectID == projectID {
			delete(m.sessions, token)
			metrics.SessionClosed()
			closed++
		}
	}
	return closed
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *SessionManager) lookup(token string) (*sessionEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[token]
	return entry, ok
}
