package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tatianab/scout-career/internal/models"
)

// Saver persists a committed state.
type Saver interface {
	Save(ctx context.Context, g models.GameState) error
}

// autosaver runs at most one save at a time. A request that arrives while a
// save is in flight is dropped; the next tick saves again.
type autosaver struct {
	saver Saver
	log   *slog.Logger

	mu       sync.Mutex
	inFlight bool
	lastErr  string
	wg       sync.WaitGroup
}

func newAutosaver(s Saver) *autosaver {
	return &autosaver{saver: s, log: slog.New(slog.DiscardHandler)}
}

// trigger starts a background save and reports whether it was accepted.
func (a *autosaver) trigger(ctx context.Context, g models.GameState) bool {
	if a.saver == nil {
		return false
	}
	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		a.log.Warn("autosave dropped: previous save still running", "week", g.CurrentWeek, "season", g.CurrentSeason)
		return false
	}
	a.inFlight = true
	a.mu.Unlock()

	snapshot := g.Clone()
	ctx = context.WithoutCancel(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		err := a.saver.Save(ctx, snapshot)
		a.mu.Lock()
		defer a.mu.Unlock()
		a.inFlight = false
		if err != nil {
			a.lastErr = err.Error()
			a.log.Error("autosave failed", "err", err)
			return
		}
		a.lastErr = ""
	}()
	return true
}

// AutosaveError returns the message of the last failed autosave, or "".
func (e *Engine) AutosaveError() string {
	e.saves.mu.Lock()
	defer e.saves.mu.Unlock()
	return e.saves.lastErr
}

// ClearAutosaveError dismisses the stored autosave error.
func (e *Engine) ClearAutosaveError() {
	e.saves.mu.Lock()
	defer e.saves.mu.Unlock()
	e.saves.lastErr = ""
}

// WaitForAutosave blocks until the in-flight save, if any, finishes.
func (e *Engine) WaitForAutosave() {
	e.saves.wg.Wait()
}
