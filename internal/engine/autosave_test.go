package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tatianab/scout-career/internal/config"
	"github.com/tatianab/scout-career/internal/models"
)

type blockingSaver struct {
	release chan struct{}

	mu    sync.Mutex
	weeks []int
}

func (s *blockingSaver) Save(ctx context.Context, g models.GameState) error {
	<-s.release
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weeks = append(s.weeks, g.CurrentWeek)
	return nil
}

func (s *blockingSaver) saved() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.weeks...)
}

func TestAutosaveDropsWhileInFlight(t *testing.T) {
	tn := config.Defaults()
	s := &blockingSaver{release: make(chan struct{})}
	e := New(tn, WithSaver(s))
	g := newGame(t, "autosave", models.SpecData, tn)

	first := advance(t, e, g)
	second := advance(t, e, first.State)
	close(s.release)
	e.WaitForAutosave()

	if got := s.saved(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("saved weeks = %v, want [2]", got)
	}

	advance(t, e, second.State)
	e.WaitForAutosave()
	if got := s.saved(); len(got) != 2 || got[1] != 4 {
		t.Fatalf("saved weeks = %v, want [2 4]", got)
	}
	if msg := e.AutosaveError(); msg != "" {
		t.Errorf("unexpected autosave error %q", msg)
	}
}

type failingSaver struct{}

func (failingSaver) Save(context.Context, models.GameState) error {
	return errors.New("disk full")
}

func TestAutosaveErrorIsStored(t *testing.T) {
	tn := config.Defaults()
	e := New(tn, WithSaver(failingSaver{}))
	g := newGame(t, "autosave", models.SpecData, tn)

	out := advance(t, e, g)
	e.WaitForAutosave()
	if out.State.CurrentWeek != 2 {
		t.Errorf("week = %d, want 2 despite the failed save", out.State.CurrentWeek)
	}
	if got := e.AutosaveError(); got != "disk full" {
		t.Fatalf("AutosaveError() = %q, want %q", got, "disk full")
	}
	e.ClearAutosaveError()
	if got := e.AutosaveError(); got != "" {
		t.Errorf("error not cleared: %q", got)
	}
}

func TestAutosaveSnapshotIsIsolated(t *testing.T) {
	tn := config.Defaults()
	s := &blockingSaver{release: make(chan struct{})}
	e := New(tn, WithSaver(s))
	g := newGame(t, "autosave", models.SpecData, tn)

	out := advance(t, e, g)
	out.State.CurrentWeek = 99
	close(s.release)
	e.WaitForAutosave()
	if got := s.saved(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("saved weeks = %v, want [2]", got)
	}
}
