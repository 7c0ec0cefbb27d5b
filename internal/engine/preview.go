package engine

import (
	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/models"
)

// DayResult is one day of the week reveal.
type DayResult struct {
	Day        string
	ActivityID string
	Activity   models.ActivityType
	Label      string
	Tier       string
	Narrative  string
	Fatigue    float64
}

// WeekSimulation maps a planned week onto seven days for the UI. It uses its
// own random keys and is never consulted by AdvanceWeek.
type WeekSimulation struct {
	Week   int
	Season int
	Days   [models.DaysPerWeek]DayResult
}

// PreviewWeek precomputes the day-by-day reveal of the scheduled week.
func (e *Engine) PreviewWeek(g models.GameState) WeekSimulation {
	sim := WeekSimulation{Week: g.CurrentWeek, Season: g.CurrentSeason}
	fatigue := g.Scout.Fatigue
	byID := map[string]models.Activity{}
	for _, a := range g.Schedule.Activities {
		byID[a.ID] = a
	}
	rolled := map[string]content.QualityRoll{}
	for i, id := range g.Schedule.Slots {
		day := DayResult{Day: models.DayNames[i], ActivityID: id, Label: "Free day"}
		a, ok := byID[id]
		if !ok {
			fatigue = models.Clamp(fatigue-e.tuning.FatigueDecay/models.DaysPerWeek, 0, 100)
			day.Fatigue = fatigue
			sim.Days[i] = day
			continue
		}
		day.Activity = a.Type
		day.Label = a.Description
		roll, seen := rolled[id]
		if !seen {
			roll = e.gen.RollActivityQuality(rngFor(g, "preview", id), a.Type, g.Scout)
			rolled[id] = roll
			if spec, ok := content.Activity(a.Type); ok {
				fatigue = models.Clamp(fatigue+spec.Fatigue, 0, 100)
			}
		}
		day.Tier = roll.Tier
		day.Narrative = roll.Narrative
		day.Fatigue = fatigue
		sim.Days[i] = day
	}
	return sim
}
