package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"invite-builder/internal/builder/editor"
	"invite-builder/internal/builder/models"
)

func TestSessionManager_Lifecycle(t *testing.T) {
	m := NewSessionManager()
	token := m.Open("p1", editor.New(models.ElementDocument{}, nil))
	require.NotEmpty(t, token)
	require.Equal(t, 1, m.Len())

	var seen string
	require.NoError(t, m.With(token, func(projectID string, s *editor.Session) error {
		seen = projectID
		return nil
	}))
	require.Equal(t, "p1", seen)

	boom := errors.New("boom")
	require.ErrorIs(t, m.With(token, func(string, *editor.Session) error { return boom }), boom)

	require.NoError(t, m.Close(token))
	require.ErrorIs(t, m.Close(token), ErrSessionNotFound)
	require.ErrorIs(t, m.With(token, func(string, *editor.Session) error { return nil }), ErrSessionNotFound)
}

func TestSessionManager_CloseProject(t *testing.T) {
	m := NewSessionManager()
	m.Open("p1", editor.New(models.ElementDocument{}, nil))
	m.Open("p1", editor.New(models.ElementDocument{}, nil))
	keep := m.Open("p2", editor.New(models.ElementDocument{}, nil))

	require.Equal(t, 2, m.CloseProject("p1"))
	require.Equal(t, 1, m.Len())
	require.NoError(t, m.With(keep, func(string, *editor.Session) error { return nil }))
}

func TestSessionManager_SerializesSession(t *testing.T) {
	m := NewSessionManager()
	token := m.Open("p1", editor.New(models.ElementDocument{}, nil))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.With(token, func(_ string, s *editor.Session) error {
				s.AddElement(models.TypeText, 0, 0)
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, m.With(token, func(_ string, s *editor.Session) error {
		require.Len(t, s.Elements(), 50)
		return nil
	}))
}
