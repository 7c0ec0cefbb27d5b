package engine

import (
	"fmt"
	"maps"

	"github.com/tatianab/scout-career/internal/models"
)

// WeekSummary is the read-only projection of a tick shown to the player.
type WeekSummary struct {
	Week                  int                `json:"week"`
	Season                int                `json:"season"`
	FatigueChange         float64            `json:"fatigue_change"`
	SkillXP               map[string]float64 `json:"skill_xp"`
	AttributeXP           map[string]float64 `json:"attribute_xp"`
	ActivityCounts        map[string]int     `json:"activity_counts"`
	Quality               []QualityNote      `json:"quality"`
	MatchesAttended       int                `json:"matches_attended"`
	ReportsWritten        int                `json:"reports_written"`
	MeetingsHeld          int                `json:"meetings_held"`
	ObservationsGenerated int                `json:"observations_generated"`
	Discoveries           []string           `json:"discoveries"`
	NewMessages           int                `json:"new_messages"`
	Finances              *FinanceSnapshot   `json:"finances,omitempty"`
	SeasonEnded           bool               `json:"season_ended"`
	Review                *ReviewSummary     `json:"review,omitempty"`
	ToolsUnlocked         []string           `json:"tools_unlocked"`
}

// QualityNote is the quality roll of one activity type.
type QualityNote struct {
	Activity   string  `json:"activity"`
	Tier       string  `json:"tier"`
	Multiplier float64 `json:"multiplier"`
	Narrative  string  `json:"narrative"`
}

// FinanceSnapshot is included on pay weeks only.
type FinanceSnapshot struct {
	Balance  float64 `json:"balance"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// ReviewSummary mirrors the season review for display.
type ReviewSummary struct {
	Outcome          string  `json:"outcome"`
	ReportsSubmitted int     `json:"reports_submitted"`
	AverageQuality   float64 `json:"average_quality"`
	ReputationDelta  float64 `json:"reputation_delta"`
}

// Celebration is the single highlight of a week, if any.
type Celebration struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Celebration kinds, highest priority first.
const (
	CelebrateWonderkid = "wonderkid"
	CelebratePromotion = "promotion"
	CelebrateScenario  = "scenario"
	CelebrateTool      = "tool"
)

func buildSummary(t *tick, g models.GameState) (models.GameState, error) {
	s := WeekSummary{
		Week:                  t.week,
		Season:                t.season,
		FatigueChange:         t.res.FatigueChange,
		SkillXP:               maps.Clone(t.res.SkillXP),
		AttributeXP:           maps.Clone(t.res.AttributeXP),
		ActivityCounts:        map[string]int{},
		Quality:               []QualityNote{},
		MatchesAttended:       t.res.MatchesAttended,
		ReportsWritten:        t.res.ReportsWritten,
		MeetingsHeld:          t.res.MeetingsHeld,
		ObservationsGenerated: t.res.ObservationsGenerated,
		Discoveries:           append([]string{}, t.res.NewDiscoveries...),
		SeasonEnded:           t.res.SeasonBoundary,
		ToolsUnlocked:         append([]string{}, t.res.ToolsUnlocked...),
	}
	for _, typ := range t.res.ActivityTypes() {
		s.ActivityCounts[string(typ)] = t.res.Counts[typ]
		q := t.res.Qualities[typ]
		s.Quality = append(s.Quality, QualityNote{Activity: string(typ), Tier: q.Tier, Multiplier: q.Multiplier, Narrative: q.Narrative})
	}
	for _, m := range g.Inbox {
		if !t.seenInbox[m.ID] {
			s.NewMessages++
		}
	}
	if t.res.PayWeek && g.Finances != nil {
		s.Finances = &FinanceSnapshot{Balance: g.Finances.Balance, Income: t.res.Income, Expenses: t.res.Expenses}
	}
	if rv := t.res.Review; rv != nil {
		s.Review = &ReviewSummary{
			Outcome:          rv.Outcome,
			ReportsSubmitted: rv.ReportsSubmitted,
			AverageQuality:   rv.AverageQuality,
			ReputationDelta:  rv.ReputationDelta,
		}
	}
	t.summary = s
	return g, nil
}

// scenarioAndCelebration settles the active scenario and picks the single
// celebration of the week.
func scenarioAndCelebration(t *tick, g models.GameState) (models.GameState, error) {
	if sc := g.Scenario; sc != nil && sc.Status == models.ScenarioActive {
		switch {
		case len(g.Discoveries) >= sc.TargetDiscoveries && g.Scout.Reputation >= sc.TargetReputation:
			sc.Status = models.ScenarioWon
			t.res.ScenarioWon = true
			t.message(&g, models.MsgScenario, "Scenario complete: "+sc.Name, "", sc.ID, false)
		case g.CurrentSeason > sc.DeadlineSeason:
			sc.Status = models.ScenarioLost
			t.message(&g, models.MsgScenario, "Scenario failed: "+sc.Name, "The deadline has passed.", sc.ID, false)
		}
	}
	t.celebration = pickCelebration(g, t.res)
	return g, nil
}

func pickCelebration(g models.GameState, res WeekResult) *Celebration {
	switch {
	case len(res.Wonderkids) > 0:
		p, _ := g.Player(res.Wonderkids[0])
		return &Celebration{Kind: CelebrateWonderkid, Title: "Wonderkid discovered!",
			Description: fmt.Sprintf("%s (%d, %s) could be a star.", p.Name, p.Age, p.Position)}
	case res.Promoted:
		return &Celebration{Kind: CelebratePromotion, Title: "Promotion!",
			Description: fmt.Sprintf("You reached career tier %d.", max(g.Scout.CareerTier, g.Scout.IndependentTier))}
	case res.ScenarioWon:
		return &Celebration{Kind: CelebrateScenario, Title: "Scenario won!", Description: g.Scenario.Name}
	case len(res.ToolsUnlocked) > 0:
		tl, _ := toolByID(res.ToolsUnlocked[0])
		return &Celebration{Kind: CelebrateTool, Title: "New tool unlocked", Description: tl.Name}
	}
	return nil
}
