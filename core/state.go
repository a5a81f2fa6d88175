package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Navigation identifies one route invocation. Only the most recently begun
// navigation may replace the current view.
type Navigation struct {
	ID         string
	Fragment   string
	Generation uint64
	StartedAt  time.Time
}

// AppState holds the view currently bound to the UI. It is replaced
// wholesale on each navigation.
type AppState struct {
	mu         sync.Mutex
	generation uint64
	current    *View
	fragment   string
	updatedAt  time.Time
}

func NewAppState() *AppState {
	return &AppState{}
}

func (s *AppState) Begin(fragment string) Navigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return Navigation{
		ID:         uuid.NewString(),
		Fragment:   fragment,
		Generation: s.generation,
		StartedAt:  time.Now(),
	}
}

// Apply installs view unless a newer navigation has begun since nav, in
// which case it returns ErrStale and leaves the state alone.
func (s *AppState) Apply(nav Navigation, view *View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nav.Generation != s.generation {
		return ErrStale
	}
	s.current = view
	s.fragment = nav.Fragment
	s.updatedAt = time.Now()
	return nil
}

func (s *AppState) IsCurrent(nav Navigation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nav.Generation == s.generation
}

type StateSnapshot struct {
	Fragment   string    `json:"fragment"`
	Generation uint64    `json:"generation"`
	View       *View     `json:"current"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (s *AppState) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StateSnapshot{
		Fragment:   s.fragment,
		Generation: s.generation,
		View:       s.current,
		UpdatedAt:  s.updatedAt,
	}
}

func (s *AppState) Current() *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
