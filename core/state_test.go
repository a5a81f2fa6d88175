package core

import (
	"errors"
	"testing"
)

func TestAppState_ApplyCurrentNavigation(t *testing.T) {
	s := NewAppState()
	nav := s.Begin("about/")

	view := &View{Name: "AboutView"}
	if err := s.Apply(nav, view); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Current() != view {
		t.Error("expected view to become current")
	}

	snap := s.Snapshot()
	if snap.Fragment != "about/" || snap.Generation != 1 || snap.View != view {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestAppState_StaleNavigationIsDiscarded(t *testing.T) {
	s := NewAppState()

	first := s.Begin("subway/?line=F")
	second := s.Begin("about/")

	if s.IsCurrent(first) || !s.IsCurrent(second) {
		t.Fatal("expected only the newest navigation to be current")
	}

	newer := &View{Name: "AboutView"}
	if err := s.Apply(second, newer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := s.Apply(first, &View{Name: "TransitAddView"})
	if !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if s.Current() != newer {
		t.Error("expected stale result not to replace the newer view")
	}
}

func TestAppState_NavigationIDsAreUnique(t *testing.T) {
	s := NewAppState()
	a, b := s.Begin(""), s.Begin("")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct navigation ids, got %q and %q", a.ID, b.ID)
	}
	if b.Generation != a.Generation+1 {
		t.Errorf("expected generations to increase, got %d then %d", a.Generation, b.Generation)
	}
}
