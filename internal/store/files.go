package store

import (
	"context"

	"github.com/tatianab/scout-career/internal/models"
)

// Saver is anything that can persist a committed state.
type Saver interface {
	Save(ctx context.Context, g models.GameState) error
}

// FileSaver writes autosaves into a slot under models.SaveDir.
type FileSaver struct {
	Name string
}

// Save writes g to the slot.
func (f FileSaver) Save(_ context.Context, g models.GameState) error {
	return g.Save(f.Name)
}

// Savers fans a save out to several targets. Every target runs even when an
// earlier one fails; the first error is returned.
type Savers []Saver

func (ss Savers) Save(ctx context.Context, g models.GameState) error {
	var first error
	for _, s := range ss {
		if err := s.Save(ctx, g); err != nil && first == nil {
			first = err
		}
	}
	return first
}
