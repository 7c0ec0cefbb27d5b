package content

import (
	"fmt"
	"sort"

	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

// YouthVenuePool picks the unsigned youngsters present at a venue. Academy
// visits show a handful from the given country; tournaments draw wider.
func (Default) YouthVenuePool(r *rng.Stream, pool []models.Player, venue models.ActivityType, country string) []models.Player {
	var local []models.Player
	for _, p := range pool {
		if venue == models.ActYouthTournament || country == "" || p.Country == country {
			local = append(local, p)
		}
	}
	size := 2
	if venue == models.ActYouthTournament {
		size = 4
	}
	shuffled := rng.Shuffle(r, local)
	if len(shuffled) > size {
		shuffled = shuffled[:size]
	}
	return shuffled
}

// ProcessVenueObservation weighs youth assessment instead of judgment.
func (d Default) ProcessVenueObservation(r *rng.Stream, player models.Player, scout models.Scout, venue models.ActivityType, ctx ObservationContext, existing []models.Observation) models.Observation {
	boosted := scout
	boosted.Skills = map[string]float64{
		models.SkillPlayerJudgment: scout.Skills[models.SkillYouthAssessment],
	}
	if venue == models.ActYouthTournament {
		ctx.ConfidenceBonus += 0.05
	}
	ctx.Source = string(venue)
	return d.GenerateObservation(r, player, boosted, ctx, existing)
}

// GenerateYouth creates n unsigned youngsters for one country.
func (Default) GenerateYouth(r *rng.Stream, country string, season, n int) []models.Player {
	out := make([]models.Player, 0, n)
	for i := 0; i < n; i++ {
		pos, _ := rng.Pick(r, Positions)
		current := r.Float(25, 50)
		potential := current + r.Float(10, 50)
		if potential > 95 {
			potential = 95
		}
		out = append(out, models.Player{
			ID:               fmt.Sprintf("Y%d-%s-%d", season, countryCode(country), i+1),
			Name:             personName(r),
			Age:              r.Int(14, 17),
			Position:         pos,
			Country:          country,
			CurrentAbility:   current,
			PotentialAbility: potential,
			MarketValue:      current * 2000,
			Form:             5,
			Youth:            true,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func countryCode(country string) string {
	if len(country) < 3 {
		return country
	}
	return country[:3]
}
