package engine

import (
	"github.com/tatianab/scout-career/internal/models"
)

// Tool is equipment the scout unlocks over a career.
type Tool struct {
	ID               string
	Name             string
	FatigueReduction float64
	XPBonus          map[models.ActivityType]float64
	ConfidenceBonus  float64
	unlocked         func(g models.GameState) bool
}

var tools = []Tool{
	{
		ID: "video_subscription", Name: "Video platform subscription",
		XPBonus:  map[models.ActivityType]float64{models.ActWatchVideo: 0.25},
		unlocked: func(g models.GameState) bool { return g.Scout.Reputation >= 30 },
	},
	{
		ID: "notebook_app", Name: "Scouting notebook app",
		ConfidenceBonus: 0.05,
		unlocked:        func(g models.GameState) bool { return len(g.Reports) >= 5 },
	},
	{
		ID: "fitness_tracker", Name: "Fitness tracker",
		FatigueReduction: 0.15,
		unlocked:         func(g models.GameState) bool { return g.Scout.Attributes[models.AttrStamina] >= 12 },
	},
	{
		ID: "data_terminal", Name: "Data terminal",
		XPBonus:         map[models.ActivityType]float64{models.ActDatabaseQuery: 0.25},
		ConfidenceBonus: 0.05,
		unlocked: func(g models.GameState) bool {
			return g.Scout.Skills[models.SkillDataLiteracy] >= 10
		},
	},
}

// Tools lists every unlockable tool.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

func toolByID(id string) (Tool, bool) {
	for _, tl := range tools {
		if tl.ID == id {
			return tl, true
		}
	}
	return Tool{}, false
}

// applyToolModifiers folds owned tools into the week result.
func applyToolModifiers(t *tick, g models.GameState) (models.GameState, error) {
	for _, id := range g.Scout.Tools {
		tl, ok := toolByID(id)
		if !ok {
			continue
		}
		if t.res.FatigueChange > 0 {
			t.res.FatigueChange *= 1 - tl.FatigueReduction
		}
		for _, typ := range t.res.ActivityTypes() {
			bonus := tl.XPBonus[typ]
			if bonus == 0 {
				continue
			}
			d := t.res.baseXP[typ]
			for _, skill := range sortedKeys(d.skills) {
				t.res.SkillXP[skill] += d.skills[skill] * bonus
			}
		}
		t.res.ConfidenceBonus += tl.ConfidenceBonus
	}
	return g, nil
}

// unlockTools grants tools whose conditions are now met.
func unlockTools(t *tick, g models.GameState) (models.GameState, error) {
	for _, tl := range tools {
		if contains(g.Scout.Tools, tl.ID) || !tl.unlocked(g) {
			continue
		}
		g.Scout.Tools = append(g.Scout.Tools, tl.ID)
		t.res.ToolsUnlocked = append(t.res.ToolsUnlocked, tl.ID)
		t.message(&g, models.MsgTool, "New tool: "+tl.Name, "", tl.ID, false)
	}
	return g, nil
}
