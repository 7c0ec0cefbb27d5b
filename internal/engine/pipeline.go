package engine

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tatianab/scout-career/internal/models"
)

// stageFunc receives a private copy of the state and returns the next state.
// A returned error discards the stage's output, including its changes to the
// week result.
type stageFunc func(t *tick, g models.GameState) (models.GameState, error)

type stage struct {
	name string
	run  stageFunc
}

// pipeline is the tick, in order.
var pipeline = []stage{
	{"resolve_schedule", resolveSchedule},
	{"quality_rolls", rollQuality},
	{"tool_modifiers", applyToolModifiers},
	{"activity_effects", resolveActivities},
	{"contacts", generateContacts},
	{"world", worldTick},
	{"economy", economyTick},
	{"transfer_window_urgency", transferWindowUrgency},
	{"rivals", rivalTick},
	{"narrative", narrativeTick},
	{"tool_unlocks", unlockTools},
	{"specialization_weekly", specializationWeekly},
	{"core", coreTick},
	{"performance_snapshot", performanceSnapshot},
	{"season_transition", seasonTransition},
	{"transfer_window_flag", refreshTransferWindow},
	{"retention", retention},
	{"week_summary", buildSummary},
	{"scenario_and_celebration", scenarioAndCelebration},
	{"commit", commit},
}

func (e *Engine) runStages(t *tick, g models.GameState, stages []stage) models.GameState {
	for _, st := range stages {
		_, span := e.tracer.Start(t.ctx, "stage."+st.name)
		before := t.res.clone()
		next, err := st.run(t, g.Clone())
		if err != nil {
			t.res = before
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			e.log.Warn("stage discarded", "stage", st.name, "week", t.week, "season", t.season, "err", err)
			span.End()
			continue
		}
		span.SetAttributes(attribute.Int("inbox", len(next.Inbox)))
		span.End()
		g = next
	}
	return g
}

func commit(t *tick, g models.GameState) (models.GameState, error) {
	t.e.saves.trigger(t.ctx, g)
	return g, nil
}
