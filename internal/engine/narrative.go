package engine

import (
	"errors"

	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

// narrativeTick resolves queued choices, steps storylines and rolls the
// weekly event.
func narrativeTick(t *tick, g models.GameState) (models.GameState, error) {
	t.resolvePendingChoices(&g)
	t.advanceStorylines(&g)
	t.triggerStoryline(&g)
	t.weeklyEvent(&g)
	return g, nil
}

// resolvePendingChoices applies queued decisions. An invalid choice is
// dropped with a warning and the tick carries on.
func (t *tick) resolvePendingChoices(g *models.GameState) {
	pending := g.PendingChoices
	g.PendingChoices = nil
	for _, pc := range pending {
		err := g.ResolveChoice(pc.EventID, pc.ChoiceIndex)
		switch {
		case err == nil:
		case errors.Is(err, models.ErrChoiceOutOfRange), errors.Is(err, models.ErrUnknownEvent),
			errors.Is(err, models.ErrAlreadyResolved):
			t.e.log.Warn("narrative choice dropped", "event", pc.EventID, "choice", pc.ChoiceIndex, "err", err)
		default:
			t.e.log.Error("narrative choice failed", "event", pc.EventID, "err", err)
		}
	}
}

func (t *tick) template(id string) (content.StorylineTemplate, bool) {
	for _, tpl := range t.e.gen.StorylineTemplates() {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return content.StorylineTemplate{}, false
}

// lastChainEvent returns the most recent event raised for a storyline.
func lastChainEvent(g models.GameState, chainID string) (models.NarrativeEvent, bool) {
	for i := len(g.NarrativeEvents) - 1; i >= 0; i-- {
		if g.NarrativeEvents[i].ChainID == chainID {
			return g.NarrativeEvents[i], true
		}
	}
	return models.NarrativeEvent{}, false
}

// advanceStorylines raises the next step of every due storyline whose
// previous step has been dealt with.
func (t *tick) advanceStorylines(g *models.GameState) {
	for i := range g.Storylines {
		sl := &g.Storylines[i]
		if sl.Completed || sl.NextAbs > t.abs {
			continue
		}
		tpl, ok := t.template(sl.TemplateID)
		if !ok || sl.Step >= len(tpl.Steps) {
			sl.Completed = true
			continue
		}
		prev, ok := lastChainEvent(*g, sl.ID)
		if ok && !prev.Acknowledged {
			continue
		}
		t.raiseStoryStep(g, sl, tpl, prev.ChoiceHistory)
	}
}

func (t *tick) raiseStoryStep(g *models.GameState, sl *models.Storyline, tpl content.StorylineTemplate, history []int) {
	step := tpl.Steps[sl.Step]
	ev := models.NarrativeEvent{
		ID:            g.NextID("event"),
		ChainID:       sl.ID,
		Kind:          "storyline:" + tpl.ID,
		Title:         step.Title,
		Body:          step.Body,
		Week:          t.week,
		Season:        t.season,
		ChoiceHistory: append([]int(nil), history...),
		Choices:       append([]models.NarrativeChoice(nil), step.Choices...),
	}
	ev.CurrentStep = len(ev.ChoiceHistory)
	if step.Consequences != nil {
		c := *step.Consequences
		ev.Consequences = &c
	}
	g.NarrativeEvents = append(g.NarrativeEvents, ev)
	t.message(g, models.MsgEvent, ev.Title, ev.Body, ev.ID, len(ev.Choices) > 0)

	sl.Step++
	sl.NextAbs = t.abs + max(t.e.tuning.StorylineStepWeeks, 1)
	if sl.Step >= len(tpl.Steps) {
		sl.Completed = true
	}
}

// triggerStoryline may start a storyline the scout has not seen yet. Only
// one storyline runs at a time.
func (t *tick) triggerStoryline(g *models.GameState) {
	for _, sl := range g.Storylines {
		if !sl.Completed {
			return
		}
	}
	r := t.stream("storyline")
	if !r.Chance(t.e.tuning.StorylineTriggerChance) {
		return
	}
	var fresh []content.StorylineTemplate
	for _, tpl := range t.e.gen.StorylineTemplates() {
		if !tpl.Allows(g.Scout.Specialization) || len(tpl.Steps) == 0 {
			continue
		}
		used := false
		for _, sl := range g.Storylines {
			if sl.TemplateID == tpl.ID {
				used = true
				break
			}
		}
		if !used {
			fresh = append(fresh, tpl)
		}
	}
	tpl, ok := rng.Pick(r, fresh)
	if !ok {
		return
	}
	g.Storylines = append(g.Storylines, models.Storyline{ID: g.NextID("storyline"), TemplateID: tpl.ID})
	t.raiseStoryStep(g, &g.Storylines[len(g.Storylines)-1], tpl, nil)
}

func (t *tick) weeklyEvent(g *models.GameState) {
	r := t.stream("event")
	if !r.Chance(t.e.tuning.WeeklyEventChance) {
		return
	}
	ev, ok := t.e.gen.WeeklyEvent(r, *g)
	if !ok {
		return
	}
	ev.ID = g.NextID("event")
	ev.Week, ev.Season = t.week, t.season
	ev.CurrentStep = len(ev.ChoiceHistory)
	g.NarrativeEvents = append(g.NarrativeEvents, ev)
	t.message(g, models.MsgEvent, ev.Title, ev.Body, ev.ID, len(ev.Choices) > 0)
}
