package engine

import (
	"github.com/tatianab/scout-career/internal/models"
)

// coreTick applies the week's fatigue and experience, develops players,
// clears the calendar and moves the counters, flagging a season boundary.
func coreTick(t *tick, g models.GameState) (models.GameState, error) {
	for _, skill := range sortedKeys(t.res.SkillXP) {
		g.Scout.AddXP(skill, t.res.SkillXP[skill]/10)
	}
	for _, attr := range sortedKeys(t.res.AttributeXP) {
		g.Scout.AddAttribute(attr, t.res.AttributeXP[attr]/10)
	}
	g.Scout.Fatigue = models.Clamp(g.Scout.Fatigue+t.res.FatigueChange-t.e.tuning.FatigueDecay, 0, 100)

	for i := range g.Players {
		developPlayer(&g.Players[i])
	}

	g.Schedule = models.WeekSchedule{}
	g.CurrentWeek++
	if g.CurrentWeek > t.e.tuning.WeeksPerSeason {
		g.CurrentWeek = 1
		g.CurrentSeason++
		t.res.SeasonBoundary = true
	}
	return g, nil
}

// developPlayer moves young players towards their potential and lets form
// drift back to average.
func developPlayer(p *models.Player) {
	if p.Age < 24 && p.CurrentAbility < p.PotentialAbility {
		p.CurrentAbility = models.Clamp(p.CurrentAbility+(p.PotentialAbility-p.CurrentAbility)*0.01, 1, p.PotentialAbility)
	} else if p.Age > 30 {
		p.CurrentAbility = models.Clamp(p.CurrentAbility-0.05, 1, 99)
	}
	p.Form += (5 - p.Form) * 0.1
	p.MarketValue = p.CurrentAbility * p.CurrentAbility * 150 * (0.8 + p.Form/25)
}

// performanceSnapshot records a snapshot once a month.
func performanceSnapshot(t *tick, g models.GameState) (models.GameState, error) {
	abs := t.absNow(g)
	if abs-g.LastSnapshotAbs < max(t.e.tuning.WeeksPerMonth, 1) {
		return g, nil
	}
	snap := models.PerformanceSnapshot{
		AbsWeek:     abs,
		Week:        g.CurrentWeek,
		Season:      g.CurrentSeason,
		Reputation:  g.Scout.Reputation,
		Reports:     len(g.Reports),
		Discoveries: len(g.Discoveries),
	}
	if g.Finances != nil {
		snap.Balance = g.Finances.Balance
	}
	g.Snapshots = append(g.Snapshots, snap)
	g.LastSnapshotAbs = abs
	return g, nil
}

// refreshTransferWindow updates the open flag on ordinary weeks; the season
// transition sets it itself.
func refreshTransferWindow(t *tick, g models.GameState) (models.GameState, error) {
	if t.res.SeasonBoundary {
		return g, nil
	}
	g.TransferWindowOpen = windowOpen(g)
	return g, nil
}

func windowOpen(g models.GameState) bool {
	for _, w := range g.TransferWindows {
		if w.Contains(g.CurrentWeek) {
			return true
		}
	}
	return false
}
