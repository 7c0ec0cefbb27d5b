package content

import (
	"math"

	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

// Quality tiers, worst first.
const (
	TierPoor      = "poor"
	TierAverage   = "average"
	TierGood      = "good"
	TierExcellent = "excellent"
)

var tierRolls = map[string]QualityRoll{
	TierPoor:      {Tier: TierPoor, Multiplier: 0.7, DiscoveryModifier: -0.1, Narrative: "A frustrating session; little went your way."},
	TierAverage:   {Tier: TierAverage, Multiplier: 1.0, DiscoveryModifier: 0, Narrative: "A solid, unremarkable session."},
	TierGood:      {Tier: TierGood, Multiplier: 1.2, DiscoveryModifier: 0.1, Narrative: "Things clicked; you left with useful notes."},
	TierExcellent: {Tier: TierExcellent, Multiplier: 1.5, DiscoveryModifier: 0.25, Narrative: "An outstanding session you will remember."},
}

// RollActivityQuality picks a tier; fatigue drags the roll down, relevant
// skills lift it.
func (Default) RollActivityQuality(r *rng.Stream, activity models.ActivityType, scout models.Scout) QualityRoll {
	skill := 0.0
	if spec, ok := Activity(activity); ok {
		for name := range spec.Skills {
			skill = math.Max(skill, scout.Skills[name])
		}
	}
	roll := r.Float64() + skill/80 - scout.Fatigue/250
	switch {
	case roll < 0.2:
		return tierRolls[TierPoor]
	case roll < 0.7:
		return tierRolls[TierAverage]
	case roll < 0.92:
		return tierRolls[TierGood]
	default:
		return tierRolls[TierExcellent]
	}
}

// GenerateObservation estimates a player's ability with noise that shrinks
// with skill, repeated looks and familiarity.
func (Default) GenerateObservation(r *rng.Stream, player models.Player, scout models.Scout, ctx ObservationContext, existing []models.Observation) models.Observation {
	judgment := scout.Skills[models.SkillPlayerJudgment]
	sigma := 14 - judgment*0.5 - float64(len(existing))*0.8 - ctx.Familiarity/20
	if sigma < 2 {
		sigma = 2
	}
	confidence := 0.3 + judgment/40 + float64(len(existing))*0.05 + ctx.ConfidenceBonus
	return models.Observation{
		PlayerID:          player.ID,
		Week:              ctx.Week,
		Season:            ctx.Season,
		Source:            ctx.Source,
		AbilityEstimate:   models.Clamp(player.CurrentAbility+r.Normal(0, sigma), 1, 99),
		PotentialEstimate: models.Clamp(player.PotentialAbility+r.Normal(0, sigma*1.3), 1, 99),
		Confidence:        models.Clamp(confidence, 0.05, 1),
	}
}

// ScoreReport grades a report 0..100 against the player's true profile.
func (Default) ScoreReport(report models.Report, player models.Player, qualityBonus float64) float64 {
	score := 45 + (player.PotentialAbility-50)*0.25 + qualityBonus*20
	switch report.Recommendation {
	case models.RecommendSign:
		if player.PotentialAbility >= 70 {
			score += 15
		} else {
			score -= 10
		}
	case models.RecommendPass:
		if player.PotentialAbility < 60 {
			score += 10
		} else {
			score -= 15
		}
	}
	return models.Clamp(score, 0, 100)
}

// Recommend turns an averaged potential estimate into a recommendation.
func Recommend(potentialEstimate float64) string {
	switch {
	case potentialEstimate >= 70:
		return models.RecommendSign
	case potentialEstimate >= 55:
		return models.RecommendMonitor
	default:
		return models.RecommendPass
	}
}
